package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/pyscribe/server/internal/eventstream"
	"codeberg.org/pyscribe/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	fragments []string
	err       error
	prompts   []string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Stream(_ context.Context, prompt string, emit func(string) error) error {
	f.prompts = append(f.prompts, prompt)

	for _, fragment := range f.fragments {
		if err := emit(fragment); err != nil {
			return err
		}
	}

	return f.err
}

func newRouter(gen llm.Generator, middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api"), gen, middleware...)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, body string) []eventstream.Event {
	t.Helper()
	d := eventstream.NewDecoder(eventstream.WithParseFailureHook(func(line string, err error) {
		t.Errorf("unparseable line %q: %v", line, err)
	}))
	return d.Feed([]byte(body))
}

func TestTranslateStreamsFragmentsThenDone(t *testing.T) {
	gen := &fakeGenerator{fragments: []string{"def is_", "palindrome(s): ..."}}

	w := post(newRouter(gen), `{"prompt":"  check palindrome  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, eventstream.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, []string{"check palindrome"}, gen.prompts)

	events := decode(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "def is_", events[0].Content)
	assert.Equal(t, "palindrome(s): ...", events[1].Content)
	assert.True(t, events[2].Done)
}

func TestTranslateReportsUpstreamFailureAsErrorFrame(t *testing.T) {
	gen := &fakeGenerator{fragments: []string{"partial"}, err: &llm.StatusError{StatusCode: 429}}

	w := post(newRouter(gen), `{"prompt":"anything"}`)

	require.Equal(t, http.StatusOK, w.Code)
	events := decode(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "partial", events[0].Content)
	assert.True(t, events[1].HasError)
	assert.Equal(t, "API Error: 429", events[1].Error)
	assert.True(t, events[2].Done)
}

func TestTranslateRejectsBlankPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	r := newRouter(gen)

	for _, body := range []string{`{"prompt":"   "}`, `{"prompt":""}`, `{}`, `not json`} {
		w := post(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"error"`)
	}

	assert.Empty(t, gen.prompts)
}

func TestTranslateRunsMiddlewareFirst(t *testing.T) {
	gen := &fakeGenerator{}
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }

	w := post(newRouter(gen, blocked), `{"prompt":"x"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Empty(t, gen.prompts)
}

func TestTranslateWithCatalogGenerator(t *testing.T) {
	w := post(newRouter(llm.NewCatalogGenerator(nil, 0)), `{"prompt":"Write a function that checks if a string is a palindrome"}`)

	var out strings.Builder
	for _, ev := range decode(t, w.Body.String()) {
		out.WriteString(ev.Content)
	}

	assert.True(t, strings.HasPrefix(out.String(), "def is_palindrome("))
}
