package health

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, db Pinger, llmName string) {
	router.GET("/", RootHandler)
	router.GET("/health", Handler(db, llmName))
}
