// Package app aggregates the main components of diffwarden so commands
// can reach them through a single handle.
package app

import (
	"log/slog"

	"github.com/sevigo/diffwarden/internal/cache"
	"github.com/sevigo/diffwarden/internal/config"
	"github.com/sevigo/diffwarden/internal/gitdiff"
	"github.com/sevigo/diffwarden/internal/llm"
	"github.com/sevigo/diffwarden/internal/storage"
)

// App holds the main application components.
type App struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Cache    *cache.Cache
	Git      *gitdiff.Client
	Prompts  *llm.PromptManager
	Reviewer *llm.Reviewer
	History  storage.Store
}

// NewApp assembles the application from its already constructed parts.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	reviewCache *cache.Cache,
	git *gitdiff.Client,
	prompts *llm.PromptManager,
	reviewer *llm.Reviewer,
	history storage.Store,
) *App {
	logger.Debug("diffwarden initialized",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.ModelName)

	return &App{
		Cfg:      cfg,
		Logger:   logger,
		Cache:    reviewCache,
		Git:      git,
		Prompts:  prompts,
		Reviewer: reviewer,
		History:  history,
	}
}
