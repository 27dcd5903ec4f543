package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultSQLitePath      = "pyscribe.db"
	defaultOpenRouterModel = "google/gemini-2.0-flash-exp:free"
	defaultTranslateRate   = "30-M"
	defaultEndpoint        = "http://localhost:8080"
	defaultHistoryLimit    = 50
)

// loads server configuration from environment variables
func LoadServerConfig() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &ServerConfig{
		Port:            envOr("PORT", defaultPort),
		Environment:     envOr("ENVIRONMENT", "development"),
		StorageDriver:   envOr("STORAGE_DRIVER", DriverMemory),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      envOr("SQLITE_PATH", defaultSQLitePath),
		LLMProvider:     os.Getenv("LLM_PROVIDER"),
		OpenRouterKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel: envOr("OPENROUTER_MODEL", defaultOpenRouterModel),
		RedisURL:        os.Getenv("REDIS_URL"),
		TranslateRate:   envOr("TRANSLATE_RATE_LIMIT", defaultTranslateRate),
		ShutdownTimeout: 10 * time.Second,
		UpstreamTimeout: 30 * time.Second,
	}

	// without a key there is nothing to call, so serve the canned catalog
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = ProviderCatalog
		if cfg.OpenRouterKey != "" {
			cfg.LLMProvider = ProviderOpenRouter
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *ServerConfig) validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres driver")
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}

	switch c.LLMProvider {
	case ProviderOpenRouter:
		if c.OpenRouterKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY environment variable is required for the openrouter provider")
		}
	case ProviderCatalog:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}

	return nil
}

// loads TUI/CLI configuration from environment variables
func LoadClientConfig() (*ClientConfig, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // .env is optional
	}

	limit := defaultHistoryLimit
	if raw := os.Getenv("PYSCRIBE_HISTORY_LIMIT"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("PYSCRIBE_HISTORY_LIMIT must be a positive integer, got %q", raw)
		}
		limit = val
	}

	return &ClientConfig{
		Endpoint:     envOr("PYSCRIBE_API_ENDPOINT", defaultEndpoint),
		HistoryLimit: limit,
		Environment:  envOr("PYSCRIBE_ENV", "development"),
		LogFile:      os.Getenv("PYSCRIBE_LOG_FILE"),
	}, nil
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
