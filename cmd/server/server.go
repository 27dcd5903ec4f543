package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/pyscribe/server/internal/config"
	"codeberg.org/pyscribe/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// pause between canned fragments so the offline generator still looks like a stream
	catalogFragmentInterval = 15 * time.Millisecond

	startupTimeout = 15 * time.Second
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.ServerConfig) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = newRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	translateLimit, err := RateLimitMiddleware(cfg.TranslateRate, redisClient)
	if err != nil {
		if redisClient != nil {
			redisClient.Close() //nolint:errcheck
		}
		store.Close()
		return nil, err
	}

	logger.Info("server dependencies ready",
		"storage", cfg.StorageDriver,
		"generator", generator.Name(),
		"rate_limit", cfg.TranslateRate,
		"redis", redisClient != nil,
	)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	server := &Server{
		config:    cfg,
		store:     store,
		generator: generator,
		redis:     redisClient,
		router:    router,
	}

	RegisterRoutes(router, server, translateLimit)

	return server, nil
}

// releases the store and redis connections
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	s.store.Close()
}
