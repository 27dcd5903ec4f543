package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure("production", &buf)
	t.Cleanup(func() { Configure("", nil) })

	Debug("hidden")
	ErrorErr(assert.AnError, "save failed", "id", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "save failed", line["msg"])
	assert.Equal(t, "abc", line["id"])
	assert.Equal(t, assert.AnError.Error(), line["error"])
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	Configure("development", &buf)
	t.Cleanup(func() { Configure("", nil) })

	assert.Same(t, defaultLogger, FromContext(context.Background()))

	scoped := With("request_id", "req-1")
	ctx := WithContext(context.Background(), scoped)

	assert.Same(t, scoped, FromContext(ctx))

	FromContext(ctx).Info("streamed")
	assert.Contains(t, buf.String(), "request_id=req-1")
}
