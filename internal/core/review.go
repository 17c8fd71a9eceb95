package core

import "time"

// Review represents a single code review stored in the database.
type Review struct {
	ID            int64
	Target        string
	Template      string
	ModelID       string
	CacheKey      string
	ReviewContent string
	CreatedAt     time.Time
}
