package main

import (
	"codeberg.org/pyscribe/server/internal/config"
	"codeberg.org/pyscribe/server/internal/llm"
	"codeberg.org/pyscribe/server/pyscribe/conversations"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	config    *config.ServerConfig
	store     conversations.Store
	generator llm.Generator
	redis     *redis.Client // nil when the limiter keeps counters in memory
	router    *gin.Engine
}
