// Package storage persists the review history in the local database.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/diffwarden/internal/core"
)

// Store defines the interface for all review-history operations.
type Store interface {
	SaveReview(ctx context.Context, review *core.Review) error
	RecentReviews(ctx context.Context, limit int) ([]core.Review, error)
}

type sqliteStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store.
func NewStore(db *sqlx.DB) Store {
	return &sqliteStore{db: db}
}

// SaveReview inserts a new review record into the database.
func (s *sqliteStore) SaveReview(ctx context.Context, review *core.Review) error {
	query := `INSERT INTO reviews (target, template, model_id, cache_key, review_content, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	template := review.Template
	if template == "" {
		template = "default"
	}
	createdAt := review.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query,
		review.Target, template, review.ModelID, review.CacheKey, review.ReviewContent, createdAt)
	if err != nil {
		return fmt.Errorf("saving review: %w", err)
	}
	return nil
}

// RecentReviews returns the newest reviews first, at most limit of them.
func (s *sqliteStore) RecentReviews(ctx context.Context, limit int) ([]core.Review, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, target, template, model_id, cache_key, review_content, created_at
	          FROM reviews
	          ORDER BY created_at DESC, id DESC
	          LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []core.Review
	for rows.Next() {
		var r core.Review
		if err := rows.Scan(&r.ID, &r.Target, &r.Template, &r.ModelID, &r.CacheKey, &r.ReviewContent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
