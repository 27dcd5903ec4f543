package conversations

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/pyscribe/server/internal/errors"
	"codeberg.org/pyscribe/server/pyscribe/conversations"
	"github.com/gin-gonic/gin"
)

// CreateHandler godoc
// @Summary Save a conversation
// @Description Persists a prompt and its generated Python code
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body conversations.CreateRequest true "Conversation to save"
// @Success 200 {object} conversations.Conversation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/conversation [post]
func CreateHandler(store conversations.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req conversations.CreateRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		conv, err := store.Create(c.Request.Context(), req)
		if err != nil {
			errors.InternalError(c, "failed to save conversation", err)
			return
		}

		c.JSON(http.StatusOK, conv)
	}
}

// ListHandler godoc
// @Summary List conversations
// @Description Returns saved conversations newest first, optionally limited to one session
// @Tags conversations
// @Produce json
// @Param session_id query string false "Session identifier"
// @Param limit query int false "Maximum entries (1-200, default 50)"
// @Success 200 {array} conversations.Conversation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/conversation [get]
func ListHandler(store conversations.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query ListQuery

		if err := c.ShouldBindQuery(&query); err != nil {
			errors.BadRequest(c, "invalid query parameters", err)
			return
		}

		list, err := store.List(c.Request.Context(), query.SessionID, conversations.NormalizeLimit(query.Limit))
		if err != nil {
			errors.InternalError(c, "failed to list conversations", err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// DeleteHandler godoc
// @Summary Delete a conversation
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/conversation/{id} [delete]
func DeleteHandler(store conversations.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id", "conversation")
		if !ok {
			return
		}

		err := store.Delete(c.Request.Context(), id)

		if stderrors.Is(err, conversations.ErrNotFound) {
			errors.NotFound(c, "conversation")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to delete conversation", err)
			return
		}

		c.JSON(http.StatusOK, DeleteResponse{Message: "Conversation deleted successfully"})
	}
}
