package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServerEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT", "ENVIRONMENT", "STORAGE_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"LLM_PROVIDER", "OPENROUTER_API_KEY", "OPENROUTER_MODEL", "REDIS_URL",
		"TRANSLATE_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadServerConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, ProviderCatalog, cfg.LLMProvider)
	assert.Equal(t, defaultTranslateRate, cfg.TranslateRate)
}

func TestLoadServerConfig_KeySelectsOpenRouter(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")

	cfg, err := LoadServerConfig()

	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, cfg.LLMProvider)
	assert.Equal(t, defaultOpenRouterModel, cfg.OpenRouterModel)
}

func TestLoadServerConfig_PostgresNeedsURL(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := LoadServerConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadServerConfig_UnknownDriver(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := LoadServerConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported STORAGE_DRIVER")
}

func TestLoadServerConfig_OpenRouterNeedsKey(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("LLM_PROVIDER", "openrouter")

	_, err := LoadServerConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("PYSCRIBE_API_ENDPOINT", "http://api.example:9000")
	t.Setenv("PYSCRIBE_HISTORY_LIMIT", "10")

	cfg, err := LoadClientConfig()

	require.NoError(t, err)
	assert.Equal(t, "http://api.example:9000", cfg.Endpoint)
	assert.Equal(t, 10, cfg.HistoryLimit)
}

func TestLoadClientConfig_BadLimit(t *testing.T) {
	t.Setenv("PYSCRIBE_HISTORY_LIMIT", "many")

	_, err := LoadClientConfig()

	assert.Error(t, err)
}
