package config

import "time"

// storage backends for conversation history
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// upstream code generators
const (
	ProviderOpenRouter = "openrouter"
	ProviderCatalog    = "catalog"
)

// configuration for cmd/server
type ServerConfig struct {
	Port            string
	Environment     string
	StorageDriver   string
	DatabaseURL     string
	SQLitePath      string
	LLMProvider     string
	OpenRouterKey   string
	OpenRouterModel string
	RedisURL        string
	TranslateRate   string // ulule limiter format, e.g. "30-M"
	ShutdownTimeout time.Duration
	UpstreamTimeout time.Duration
}

// configuration shared by the TUI and CLI clients
type ClientConfig struct {
	Endpoint     string
	HistoryLimit int
	Environment  string
	LogFile      string
}
