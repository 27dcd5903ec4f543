package conversations

import (
	"codeberg.org/pyscribe/server/pyscribe/conversations"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store conversations.Store) {
	group := router.Group("/conversation")
	{
		group.POST("", CreateHandler(store))
		group.GET("", ListHandler(store))
		group.DELETE("/:id", DeleteHandler(store))
	}
}
