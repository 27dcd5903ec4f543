package main

import (
	"context"
	"fmt"

	"codeberg.org/pyscribe/server/internal/config"
	"codeberg.org/pyscribe/server/internal/llm"
	"codeberg.org/pyscribe/server/pyscribe/conversations"
)

// opens the conversation store selected by STORAGE_DRIVER
func newStore(ctx context.Context, cfg *config.ServerConfig) (conversations.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return conversations.NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		return conversations.NewSQLiteStore(ctx, cfg.SQLitePath)
	case config.DriverMemory:
		return conversations.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// builds the code generator selected by LLM_PROVIDER
func newGenerator(cfg *config.ServerConfig) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		return llm.NewOpenRouterGenerator(llm.OpenRouterConfig{
			APIKey:  cfg.OpenRouterKey,
			Model:   cfg.OpenRouterModel,
			Timeout: cfg.UpstreamTimeout,
		}), nil
	case config.ProviderCatalog:
		return llm.NewCatalogGenerator(nil, catalogFragmentInterval), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
