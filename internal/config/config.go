package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/sevigo/diffwarden/internal/logger"
)

// DefaultModelName is used when no model is configured. The configured
// model id participates in cache-key derivation and entry validation.
const DefaultModelName = "gemma3:latest"

// Config holds the application's configuration values.
type Config struct {
	AI       AIConfig
	Logging  logger.Config
	Database DBConfig
}

// AIConfig selects the LLM provider and model used for reviews.
type AIConfig struct {
	Provider     string
	ModelName    string
	OllamaHost   string
	GeminiAPIKey string
}

// DBConfig locates the local review-history database.
type DBConfig struct {
	Path string
}

// LoadConfig reads configuration from environment variables (prefixed
// with DW_) and an optional .env file, sets defaults, and validates the
// provider selection. It uses the Viper library to handle configuration
// loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetEnvPrefix("DW")
	viper.AutomaticEnv()

	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("MODEL_NAME", DefaultModelName)
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stderr")
	viper.SetDefault("DATABASE_PATH", "diffwarden.db")

	if err := viper.ReadInConfig(); err != nil {
		// The .env file is optional; anything else is worth a warning.
		if !os.IsNotExist(err) {
			slog.Warn("failed to read .env file", "error", err)
		}
	}

	provider := viper.GetString("LLM_PROVIDER")
	switch provider {
	case "ollama", "gemini":
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	if provider == "gemini" && viper.GetString("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("DW_GEMINI_API_KEY must be set for the gemini provider")
	}

	return &Config{
		AI: AIConfig{
			Provider:     provider,
			ModelName:    viper.GetString("MODEL_NAME"),
			OllamaHost:   viper.GetString("OLLAMA_HOST"),
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
		},
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Database: DBConfig{
			Path: viper.GetString("DATABASE_PATH"),
		},
	}, nil
}
