package translate

import (
	"net/http"
	"strings"

	"codeberg.org/pyscribe/server/internal/errors"
	"codeberg.org/pyscribe/server/internal/eventstream"
	"codeberg.org/pyscribe/server/internal/llm"
	"codeberg.org/pyscribe/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Translate English to Python
// @Description Streams generated Python code as event-stream frames ending with [DONE]
// @Tags translate
// @Accept json
// @Produce text/event-stream
// @Param request body TranslateRequest true "Prompt to translate"
// @Success 200 {string} string "data: {\"content\":\"...\"}"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/translate [post]
func Handler(generator llm.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TranslateRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		prompt := strings.TrimSpace(req.Prompt)
		if prompt == "" {
			errors.BadRequest(c, "prompt is required", nil)
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx).With("generator", generator.Name())

		eventstream.PrepareHeaders(c.Writer.Header())
		c.Status(http.StatusOK)

		stream := eventstream.NewWriter(c.Writer)
		fragments := 0

		err := generator.Stream(ctx, prompt, func(fragment string) error {
			fragments++
			return stream.WriteContent(fragment)
		})

		// client went away, nobody is left to read a frame
		if ctx.Err() != nil {
			log.Info("translation abandoned by client", "fragments", fragments)
			return
		}

		if err != nil {
			log.Error("translation failed", "error", err, "fragments", fragments)

			if writeErr := stream.WriteError(llm.UserMessage(err)); writeErr != nil {
				log.Debug("failed to write error frame", "error", writeErr)
				return
			}
		}

		if err := stream.WriteDone(); err != nil {
			log.Debug("failed to terminate stream", "error", err)
			return
		}

		log.Debug("translation streamed", "fragments", fragments)
	}
}
