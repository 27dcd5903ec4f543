package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/pyscribe/server/internal/errors"
	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler godoc
// @Summary Health check
// @Description Reports database connectivity and the configured generator
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/health [get]
func Handler(db Pinger, llmName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			errors.ServiceUnavailable(c, "database unavailable", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Services: Services{
				Database: "connected",
				LLM:      llmName,
			},
		})
	}
}

// greets callers of the api root
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{Message: "Hello World"})
}
