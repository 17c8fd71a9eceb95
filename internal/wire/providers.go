package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/diffwarden/internal/cache"
	"github.com/sevigo/diffwarden/internal/config"
	"github.com/sevigo/diffwarden/internal/logger"
)

// provideGeneratorLLM creates the LLM client for the configured provider.
func provideGeneratorLLM(ctx context.Context, cfg *config.Config, log *slog.Logger) (llms.Model, error) {
	switch cfg.AI.Provider {
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("DW_GEMINI_API_KEY is not set in environment for gemini provider")
		}
		return gemini.New(ctx,
			gemini.WithModel(cfg.AI.ModelName),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)
	case "ollama":
		return ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.AI.ModelName),
			ollama.WithLogger(log),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.Provider)
	}
}

// provideCache builds the on-disk review cache keyed by the configured model.
func provideCache(cfg *config.Config, log *slog.Logger) (*cache.Cache, error) {
	return cache.NewOnDisk(cfg.AI.ModelName, log)
}

// newOllamaHTTPClient creates an HTTP client with longer timeouts for
// Ollama requests, which can take a while for large diffs.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   false,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

// provideLogWriter returns nil so NewLogger resolves the destination
// from the logging config.
func provideLogWriter() io.Writer {
	return nil
}

func provideDBConfig(cfg *config.Config) config.DBConfig {
	return cfg.Database
}
