package conversations

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("conversation not found")

// clamps a requested page size into [1, MaxListLimit]; zero or negative means the default
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}

	return min(limit, MaxListLimit)
}

func newConversation(req CreateRequest, now time.Time) *Conversation {
	conv := &Conversation{
		ID:           uuid.NewString(),
		UserInput:    req.UserInput,
		PythonOutput: req.PythonOutput,
		Timestamp:    now.UTC().Truncate(time.Microsecond), // precision both databases keep
	}

	// blank session ids are stored as null
	if req.SessionID != nil && *req.SessionID != "" {
		sid := *req.SessionID
		conv.SessionID = &sid
	}

	return conv
}
