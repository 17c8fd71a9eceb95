//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/diffwarden/internal/app"
	"github.com/sevigo/diffwarden/internal/config"
	"github.com/sevigo/diffwarden/internal/db"
	"github.com/sevigo/diffwarden/internal/gitdiff"
	"github.com/sevigo/diffwarden/internal/llm"
	"github.com/sevigo/diffwarden/internal/logger"
	"github.com/sevigo/diffwarden/internal/storage"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		config.LoadConfig,
		logger.NewLogger,
		db.NewDatabase,
		storage.NewStore,
		gitdiff.NewClient,
		llm.NewPromptManager,
		llm.NewReviewer,
		provideGeneratorLLM,
		provideCache,
		provideLoggerConfig,
		provideLogWriter,
		provideDBConfig,
	)
	return &app.App{}, nil, nil
}
