package translator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message and details", `{"error":"validation_error","message":"validation failed","details":"prompt required"}`, "validation failed: prompt required"},
		{"error code only", `{"error":"too_many_requests"}`, "too_many_requests"},
		{"plain text", "  bad gateway \n", "bad gateway"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readErrorMessage(strings.NewReader(tt.body)))
		})
	}
}

func TestClientTranslateSendsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/translate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"prompt":"add numbers"}`, string(body))

		w.Write([]byte("data: [DONE]\n\n")) //nolint:errcheck
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL+"/").Translate(context.Background(), "add numbers")
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "data: [DONE]\n\n", string(raw))
}

func TestClientListDecodesNullAsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte("null")) //nolint:errcheck
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).ListConversations(context.Background(), "", 0)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
