package conversations

import (
	"context"
	"sync"
	"time"
)

// keeps conversations in process memory; for development and tests
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Conversation // insertion order
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, req CreateRequest) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := newConversation(req, s.now())
	s.entries = append(s.entries, *conv)

	return conv, nil
}

func (s *MemoryStore) List(_ context.Context, sessionID string, limit int) ([]Conversation, error) {
	limit = NormalizeLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Conversation{}

	// newest first; later inserts win timestamp ties
	for i := len(s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		conv := s.entries[i]

		if sessionID != "" && (conv.SessionID == nil || *conv.SessionID != sessionID) {
			continue
		}

		result = append(result, conv)
	}

	return result, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, conv := range s.entries {
		if conv.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() {}
