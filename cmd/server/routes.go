package main

import (
	"codeberg.org/pyscribe/server/api/rest/conversations"
	"codeberg.org/pyscribe/server/api/rest/health"
	"codeberg.org/pyscribe/server/api/rest/translate"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server, translateLimit gin.HandlerFunc) {
	router.Use(CORSMiddleware(), RequestLoggerMiddleware())

	api := router.Group("/api")

	{
		health.RegisterRoutes(api, server.store, server.generator.Name())
		translate.RegisterRoutes(api, server.generator, translateLimit)
		conversations.RegisterRoutes(api, server.store)
	}
}
