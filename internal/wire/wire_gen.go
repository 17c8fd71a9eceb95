// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/diffwarden/internal/app"
	"github.com/sevigo/diffwarden/internal/config"
	"github.com/sevigo/diffwarden/internal/db"
	"github.com/sevigo/diffwarden/internal/gitdiff"
	"github.com/sevigo/diffwarden/internal/llm"
	"github.com/sevigo/diffwarden/internal/logger"
	"github.com/sevigo/diffwarden/internal/storage"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	slogLogger := logger.NewLogger(provideLoggerConfig(cfg), provideLogWriter())

	// Database and review history
	dbConn, dbCleanup, err := db.NewDatabase(provideDBConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	history := storage.NewStore(dbConn.DB)

	// Review cache
	reviewCache, err := provideCache(cfg, slogLogger)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to initialize review cache: %w", err)
	}

	// Git client
	gitClient := gitdiff.NewClient(slogLogger)

	// Prompts and generator LLM
	prompts, err := llm.NewPromptManager()
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	model, err := provideGeneratorLLM(ctx, cfg, slogLogger)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	reviewer := llm.NewReviewer(model, prompts, slogLogger)

	application := app.NewApp(cfg, slogLogger, reviewCache, gitClient, prompts, reviewer, history)
	return application, dbCleanup, nil
}
