package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"codeberg.org/pyscribe/server/internal/examples"
	"codeberg.org/pyscribe/server/internal/translator"
	"codeberg.org/pyscribe/server/pyscribe/conversations"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	stream  string
	entries []translator.Entry
	deleted []string
}

func (f *fakeBackend) Translate(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.stream)), nil
}

func (f *fakeBackend) SaveConversation(_ context.Context, req conversations.CreateRequest) (*translator.Entry, error) {
	return &translator.Entry{ID: "saved", UserInput: req.UserInput, PythonOutput: req.PythonOutput}, nil
}

func (f *fakeBackend) ListConversations(context.Context, string, int) ([]translator.Entry, error) {
	if f.entries == nil {
		return nil, errors.New("offline")
	}
	return f.entries, nil
}

func (f *fakeBackend) DeleteConversation(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestApp(backend *fakeBackend) *Model {
	m := NewApp(backend, translator.ResumeSession("session_tui"), 10)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// applies whatever the controller published so far
func flush(m *Model) {
	m.Update(m.bridge.drain())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBridgeCoalescesStates(t *testing.T) {
	b := newBridge()

	b.StateChanged(translator.State{Output: "a"})
	b.StateChanged(translator.State{Output: "ab"})
	b.Notified(translator.Notification{Title: "Save Failed"})

	msg := b.wait()().(controllerMsg)

	assert.True(t, msg.hasState)
	assert.Equal(t, "ab", msg.state.Output)
	require.Len(t, msg.notifications, 1)
	assert.Empty(t, b.drain().notifications)
}

func TestCtrlECyclesExamples(t *testing.T) {
	m := newTestApp(&fakeBackend{})
	prompts := examples.Prompts()

	m.Update(key("ctrl+e"))
	flush(m)
	assert.Equal(t, prompts[0], m.prompt.Value())

	m.Update(key("ctrl+e"))
	flush(m)
	assert.Equal(t, prompts[1], m.prompt.Value())
	assert.Equal(t, prompts[1], m.ctrl.Snapshot().CurrentExample)
}

func TestHistoryPanelLoadAndDelete(t *testing.T) {
	backend := &fakeBackend{entries: []translator.Entry{
		{ID: "1", UserInput: "first prompt", PythonOutput: "one = 1"},
		{ID: "2", UserInput: "second prompt", PythonOutput: "two = 2"},
	}}
	m := newTestApp(backend)

	msg := loadHistoryCmd(m.ctrl, 10)()
	m.Update(msg)
	flush(m)
	require.Len(t, m.state.History, 2)

	m.Update(key("ctrl+h"))
	flush(m)
	assert.Equal(t, FocusHistory, m.focus)
	assert.Contains(t, m.View(), "History (2)")

	m.Update(key("down"))
	m.Update(key("enter"))
	flush(m)
	assert.Equal(t, "second prompt", m.prompt.Value())
	assert.Equal(t, "two = 2", m.state.Output)
	assert.Equal(t, FocusPrompt, m.focus)

	m.Update(key("ctrl+h"))
	flush(m)
	_, cmd := m.Update(key("d"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	flush(m)

	assert.Equal(t, []string{"2"}, backend.deleted)
	require.Len(t, m.state.History, 1)
	assert.Equal(t, "1", m.state.History[0].ID)
	assert.Equal(t, 0, m.historyCursor)
}

func TestHistoryLoadFailureIsSilent(t *testing.T) {
	m := newTestApp(&fakeBackend{})

	m.Update(loadHistoryCmd(m.ctrl, 10)())
	flush(m)

	assert.Nil(t, m.status)
	assert.Empty(t, m.state.History)
	assert.NotContains(t, m.View(), "Failed")
}

func TestQueuedStateDoesNotEraseTyping(t *testing.T) {
	m := newTestApp(&fakeBackend{})

	m.Update(key("a"))
	queued := m.bridge.drain()

	m.Update(key("b"))
	m.Update(queued)
	m.Update(key("c"))

	assert.Equal(t, "abc", m.prompt.Value())
	assert.Equal(t, "abc", m.ctrl.Snapshot().Prompt)
}

func TestSubmitShowsTranslation(t *testing.T) {
	backend := &fakeBackend{stream: "data: {\"content\":\"print('hi')\"}\n\ndata: [DONE]\n\n"}
	m := newTestApp(backend)

	m.prompt.SetValue("say hi")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	result, err := m.ctrl.Submit(context.Background(), m.prompt.Value())
	require.NoError(t, err)
	flush(m)

	assert.Equal(t, "print('hi')", result.Output)
	assert.Equal(t, "print('hi')", m.state.Output)
	assert.False(t, m.state.Streaming)
	require.Len(t, m.state.History, 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b…", truncate("a\n b  cdef", 4))
}
