package conversations

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultListLimit, NormalizeLimit(-3))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxListLimit, NormalizeLimit(10_000))
}

func TestNewConversationDropsBlankSession(t *testing.T) {
	conv := newConversation(CreateRequest{UserInput: "a", PythonOutput: "b", SessionID: strPtr("")}, time.Now())

	assert.Nil(t, conv.SessionID)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, time.UTC, conv.Timestamp.Location())
}

func TestNewConversationKeepsMicroseconds(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 123456789, time.FixedZone("CET", 3600))

	conv := newConversation(CreateRequest{UserInput: "a", PythonOutput: "b"}, now)

	assert.Equal(t, 123456000, conv.Timestamp.Nanosecond())
	assert.Equal(t, 4, conv.Timestamp.Hour())
}

// runs the shared behaviour checks against any backend
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	first, err := store.Create(ctx, CreateRequest{UserInput: "sort a list", PythonOutput: "sorted(xs)", SessionID: strPtr("session_a")})
	require.NoError(t, err)

	second, err := store.Create(ctx, CreateRequest{UserInput: "sort a list", PythonOutput: "xs.sort()", SessionID: strPtr("session_a")})
	require.NoError(t, err)

	other, err := store.Create(ctx, CreateRequest{UserInput: "palindrome", PythonOutput: "s == s[::-1]", SessionID: strPtr("session_b")})
	require.NoError(t, err)

	anon, err := store.Create(ctx, CreateRequest{UserInput: "hello", PythonOutput: "print('hello')"})
	require.NoError(t, err)
	assert.Nil(t, anon.SessionID)

	t.Run("list filters by session newest first", func(t *testing.T) {
		got, err := store.List(ctx, "session_a", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
		assert.Equal(t, "session_a", *got[0].SessionID)
		assert.Equal(t, first.Timestamp.Unix(), got[1].Timestamp.Unix())
	})

	t.Run("list respects limit", func(t *testing.T) {
		got, err := store.List(ctx, "session_a", 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, second.ID, got[0].ID)
	})

	t.Run("empty session lists everything", func(t *testing.T) {
		got, err := store.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, anon.ID, got[0].ID)
		assert.Equal(t, other.ID, got[1].ID)
	})

	t.Run("unknown session is empty not nil", func(t *testing.T) {
		got, err := store.List(ctx, "session_none", 10)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("delete removes only the matching id", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, first.ID))

		got, err := store.List(ctx, "session_a", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, second.ID, got[0].ID)

		assert.ErrorIs(t, store.Delete(ctx, first.ID), ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "missing"), ErrNotFound)
	})

	require.NoError(t, store.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "conversations.db")

	store, err := NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "conversations.db")

	store, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)

	created, err := store.Create(ctx, CreateRequest{UserInput: "q", PythonOutput: "a", SessionID: strPtr("s")})
	require.NoError(t, err)
	store.Close()

	reopened, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.List(ctx, "s", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *created, got[0])
}
