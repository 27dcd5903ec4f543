package llm

import (
	"context"
	"errors"
	"fmt"
)

// produces Python code for a natural-language prompt, fragment by fragment
type Generator interface {
	// identifies the backend in health output and logs
	Name() string

	// calls emit for every fragment in order; an emit error aborts generation
	Stream(ctx context.Context, prompt string, emit func(fragment string) error) error
}

// returned when the upstream API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream API request failed with status %d: %s", e.StatusCode, e.Body)
}

var (
	ErrTimeout = errors.New("upstream request timed out")
	ErrNetwork = errors.New("upstream network error")
)

// messages streamed to clients in error frames
const (
	msgTimeout    = "Request timeout. Please try again."
	msgNetwork    = "Network error. Please check your connection."
	msgUnexpected = "An unexpected error occurred. Please try again."
)

// converts a generation failure into the text shown to users
func UserMessage(err error) string {
	var statusErr *StatusError

	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("API Error: %d", statusErr.StatusCode)
	case errors.Is(err, ErrTimeout):
		return msgTimeout
	case errors.Is(err, ErrNetwork):
		return msgNetwork
	default:
		return msgUnexpected
	}
}
