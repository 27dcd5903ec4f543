package conversations

import (
	"context"
	"time"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// a saved prompt/translation pair
type Conversation struct {
	ID           string    `json:"id"`
	UserInput    string    `json:"user_input"`
	PythonOutput string    `json:"python_output"`
	SessionID    *string   `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
}

type CreateRequest struct {
	UserInput    string  `json:"user_input" binding:"required"`
	PythonOutput string  `json:"python_output" binding:"required"`
	SessionID    *string `json:"session_id,omitempty"`
}

// persistence backend for conversations; List returns newest first
type Store interface {
	Create(ctx context.Context, req CreateRequest) (*Conversation, error)

	// an empty sessionID lists every session
	List(ctx context.Context, sessionID string, limit int) ([]Conversation, error)

	// returns ErrNotFound when no row matches id
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close()
}
