package translate

import (
	"codeberg.org/pyscribe/server/internal/llm"
	"github.com/gin-gonic/gin"
)

// middleware runs ahead of the handler, e.g. the per-client rate limiter
func RegisterRoutes(router *gin.RouterGroup, generator llm.Generator, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, Handler(generator))
	router.POST("/translate", handlers...)
}
