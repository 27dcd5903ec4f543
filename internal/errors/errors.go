package errors

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"codeberg.org/pyscribe/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For streaming handlers (text/event-stream):
//   - Once the stream has started the status is already sent; report failures
//     as an error frame instead of calling these helpers
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// standard error codes
const (
	CodeNotFound           = "not_found"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeBadRequest         = "bad_request"
	CodeTooManyRequests    = "too_many_requests"
	CodeServiceUnavailable = "service_unavailable"
)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"category", classifyError(err).category,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 503 service unavailable error
func ServiceUnavailable(c *gin.Context, message string, err error) {
	if message == "" {
		message = "service unavailable"
	}

	logger.ErrorErr(err, message, "path", c.Request.URL.Path)

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeServiceUnavailable,
		Message: message,
		Details: sanitizeError(err),
	})
}

// reports whether id is a canonical UUID string
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}

	_, err := uuid.Parse(id)
	return err == nil
}

// reads a UUID path parameter; anything that cannot be an id answers 404 for resource
func ValidatePathUUID(c *gin.Context, paramName, resource string) (string, bool) {
	id := c.Param(paramName)

	if id == "" {
		BadRequest(c, "missing "+paramName, nil)
		return "", false
	}

	if !IsValidUUID(id) {
		NotFound(c, resource)
		return "", false
	}

	return id, true
}

type errorInfo struct {
	category  string
	sanitized string
}

// typed matches, checked before falling back to message keywords
var typedRules = []struct {
	match func(error) bool
	info  errorInfo
}{
	{func(err error) bool { var e *pgconn.PgError; return errors.As(err, &e) }, errorInfo{CategoryDatabase, "database operation failed"}},
	{func(err error) bool { var e *sqlite.Error; return errors.As(err, &e) }, errorInfo{CategoryDatabase, "database operation failed"}},
	{func(err error) bool { return errors.Is(err, pgx.ErrNoRows) }, errorInfo{CategoryNotFound, "resource not found"}},
	{func(err error) bool { return errors.Is(err, context.DeadlineExceeded) }, errorInfo{CategoryTimeout, "request timed out"}},
	{func(err error) bool { return errors.Is(err, context.Canceled) }, errorInfo{CategoryTimeout, "request canceled"}},
}

var keywordRules = []struct {
	keywords []string
	info     errorInfo
}{
	{[]string{"timeout", "deadline"}, errorInfo{CategoryTimeout, "request timed out"}},
	{[]string{"not found", "no rows"}, errorInfo{CategoryNotFound, "resource not found"}},
	{[]string{"database", "sql", "postgres", "pgx"}, errorInfo{CategoryDatabase, "database operation failed"}},
	{[]string{"connection", "network", "dial"}, errorInfo{CategoryNetwork, "connection error occurred"}},
	{[]string{"validation", "binding", "invalid", "required"}, errorInfo{CategoryValidation, "validation failed"}},
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	return classifyError(err).sanitized
}

// returns the category of err and the message safe to show to clients.
// outside production the raw error text is kept
func classifyError(err error) errorInfo {
	if err == nil {
		return errorInfo{CategoryUnknown, ""}
	}

	info := lookupCategory(err)

	if os.Getenv("ENVIRONMENT") != "production" {
		info.sanitized = err.Error()
	}

	return info
}

func lookupCategory(err error) errorInfo {
	for _, rule := range typedRules {
		if rule.match(err) {
			return rule.info
		}
	}

	msg := strings.ToLower(err.Error())

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.info
			}
		}
	}

	return errorInfo{CategoryUnknown, "an error occurred"}
}
