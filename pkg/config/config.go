package config

import (
	"fmt"
	"os"

	apperrors "github.com/jayeshbankoti007/movie-graph-rag/pkg/errors"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Tabular sources (shared movie id column)
	MoviesCSVPath   string
	CreditsCSVPath  string
	KeywordsCSVPath string

	// Embedding service (OpenAI-compatible)
	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string
	IndexDir         string // where the index/mapping artifacts live

	// Agent LLM (OpenAI-compatible)
	LLMBaseURL string
	LLMAPIKey  string
	ModelID    string

	// Query limits
	PathMaxHops int
	SearchTopK  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		MoviesCSVPath:    getEnv("MOVIES_CSV", "data/movies_metadata.csv"),
		CreditsCSVPath:   getEnv("CREDITS_CSV", "data/credits.csv"),
		KeywordsCSVPath:  getEnv("KEYWORDS_CSV", "data/keywords.csv"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:4000"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "intfloat/e5-base-v2"),
		IndexDir:         getEnv("INDEX_DIR", "."),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		ModelID:          getEnv("MODEL_ID", "gpt-4o-mini"),
		PathMaxHops:      getEnvInt("PATH_MAX_HOPS", 3),
		SearchTopK:       getEnvInt("SEARCH_TOP_K", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MoviesCSVPath == "" {
		return apperrors.NewBaseError(apperrors.ErrorTypeConfig, "MOVIES_CSV is required", nil)
	}
	if c.CreditsCSVPath == "" {
		return apperrors.NewBaseError(apperrors.ErrorTypeConfig, "CREDITS_CSV is required", nil)
	}
	if c.KeywordsCSVPath == "" {
		return apperrors.NewBaseError(apperrors.ErrorTypeConfig, "KEYWORDS_CSV is required", nil)
	}
	if c.EmbeddingModel == "" {
		return apperrors.NewBaseError(apperrors.ErrorTypeConfig, "EMBEDDING_MODEL is required", nil)
	}
	if c.PathMaxHops < 1 {
		return apperrors.NewBaseError(apperrors.ErrorTypeConfig, "PATH_MAX_HOPS must be at least 1", nil)
	}
	// API keys are optional for development setups behind a local proxy
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
