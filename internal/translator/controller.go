package translator

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"codeberg.org/pyscribe/server/internal/eventstream"
	"codeberg.org/pyscribe/server/internal/logger"
	"codeberg.org/pyscribe/server/pyscribe/conversations"
)

const readBufferSize = 4 << 10

// drives one translator session: streaming runs, cancellation and local history
type Controller struct {
	backend   Backend
	session   *Session
	listener  Listener
	onParse   func(line string, err error)
	historyOn bool

	mu    sync.Mutex
	state State
	run   *run // nil when idle
}

// one in-flight translation
type run struct {
	cancel context.CancelFunc
}

type Option func(*Controller)

func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.listener = l
	}
}

// observes event-stream lines that failed to parse; they are skipped either way
func WithParseFailureHook(hook func(line string, err error)) Option {
	return func(c *Controller) {
		c.onParse = hook
	}
}

// disables persisting completed runs, e.g. for a one-off CLI call with --no-save
func WithoutPersistence() Option {
	return func(c *Controller) {
		c.historyOn = false
	}
}

func NewController(backend Backend, session *Session, opts ...Option) *Controller {
	c := &Controller{
		backend:   backend,
		session:   session,
		listener:  ListenerFuncs{},
		historyOn: true,
		onParse: func(line string, err error) {
			logger.Debug("skipping unparseable stream line", "line", line, "error", err)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Controller) Output() string {
	return c.Snapshot().Output
}

func (c *Controller) Streaming() bool {
	return c.Snapshot().Streaming
}

// translates prompt, blocking until the stream ends, fails or is cancelled.
// A completed run is persisted; if only that save fails the result is still
// returned together with a *PersistenceError.
func (c *Controller) Submit(ctx context.Context, prompt string) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		c.notify(Notification{Kind: NotifyValidation, Title: titleInputRequired, Message: ErrValidation.Error()})
		return nil, ErrValidation
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()

	if c.run != nil {
		c.mu.Unlock()
		return nil, ErrStreamInProgress
	}

	r := &run{cancel: cancel}
	c.run = r
	c.state.Prompt = prompt
	c.state.Output = ""
	c.state.Streaming = true
	state := c.snapshotLocked()

	c.mu.Unlock()
	c.listener.StateChanged(state)

	output, err := c.consume(runCtx, r, prompt)

	if !c.finish(r) || errors.Is(err, context.Canceled) {
		return &Result{Output: output, Cancelled: true}, nil
	}

	var transportErr *TransportError
	var upstreamErr *UpstreamError

	switch {
	case errors.As(err, &transportErr):
		c.setOutput(FailureMarker)
		c.notify(Notification{Kind: NotifyTransport, Title: titleTranslationFailed, Message: transportErr.Error()})
		return &Result{Output: FailureMarker}, err

	case errors.As(err, &upstreamErr):
		c.notify(Notification{Kind: NotifyUpstream, Title: titleTranslationFailed, Message: upstreamErr.Message})
		return &Result{Output: output}, err

	case err != nil:
		return &Result{Output: output}, err
	}

	result := &Result{Output: output}

	if output == "" || !c.historyOn {
		return result, nil
	}

	saved, err := c.Persist(ctx, prompt, output)
	result.Saved = saved

	return result, err
}

// reads the stream of run r until it ends and returns the accumulated output
func (c *Controller) consume(ctx context.Context, r *run, prompt string) (string, error) {
	body, err := c.backend.Translate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", context.Canceled
		}

		return "", asTransportError(err)
	}
	defer body.Close() //nolint:errcheck

	decoder := eventstream.NewDecoder(eventstream.WithParseFailureHook(c.onParse))
	buf := make([]byte, readBufferSize)

	var acc strings.Builder

	// applies decoded events; reports whether consumption should stop
	apply := func(events []eventstream.Event) (bool, error) {
		for _, ev := range events {
			if ev.Done {
				return true, nil
			}

			// content in a frame that also carries an error is kept
			if ev.HasContent {
				if !c.publishOutput(r, acc.String()+ev.Content) {
					return true, context.Canceled
				}

				acc.WriteString(ev.Content)
			}

			if ev.HasError {
				return true, &UpstreamError{Message: ev.Error}
			}
		}

		return false, nil
	}

	for {
		if ctx.Err() != nil {
			return acc.String(), context.Canceled
		}

		n, readErr := body.Read(buf)

		if n > 0 {
			if stop, err := apply(decoder.Feed(buf[:n])); stop {
				return acc.String(), err
			}
		}

		if errors.Is(readErr, io.EOF) {
			_, err := apply(decoder.Flush())
			return acc.String(), err
		}

		if readErr != nil {
			if ctx.Err() != nil {
				return acc.String(), context.Canceled
			}

			return acc.String(), &TransportError{Err: readErr}
		}
	}
}

// stops the active run; fragments that arrive afterwards are dropped and nothing is saved
func (c *Controller) Cancel() {
	c.mu.Lock()

	if c.run == nil {
		c.mu.Unlock()
		return
	}

	c.run.cancel()
	c.run = nil
	c.state.Streaming = false
	state := c.snapshotLocked()

	c.mu.Unlock()
	c.listener.StateChanged(state)
}

// saves a finished exchange and prepends it to the local history
func (c *Controller) Persist(ctx context.Context, prompt, output string) (*Entry, error) {
	sessionID := c.session.ID()

	entry, err := c.backend.SaveConversation(ctx, conversations.CreateRequest{
		UserInput:    prompt,
		PythonOutput: output,
		SessionID:    &sessionID,
	})

	if err != nil {
		perr := &PersistenceError{Op: "save", Err: err}
		logger.Warn("failed to save conversation", "session_id", sessionID, "error", err)
		c.notify(Notification{Kind: NotifyPersistence, Title: titleSaveFailed, Message: perr.Error()})
		return nil, perr
	}

	c.update(func(s *State) {
		s.History = prependEntry(s.History, *entry)
	})

	return entry, nil
}

// replaces the local history with the session's saved entries
func (c *Controller) LoadHistory(ctx context.Context, limit int) error {
	entries, err := c.backend.ListConversations(ctx, c.session.ID(), limit)
	if err != nil {
		logger.Warn("failed to load conversation history", "session_id", c.session.ID(), "error", err)
		return &PersistenceError{Op: "load", Err: err}
	}

	c.update(func(s *State) {
		s.History = copyEntries(entries)
	})

	return nil
}

// deletes the entry with id on the backend, then locally
func (c *Controller) DeleteEntry(ctx context.Context, id string) error {
	if err := c.backend.DeleteConversation(ctx, id); err != nil {
		perr := &PersistenceError{Op: "delete", Err: err}
		logger.Warn("failed to delete conversation", "id", id, "error", err)
		c.notify(Notification{Kind: NotifyPersistence, Title: titleDeleteFailed, Message: perr.Error()})
		return perr
	}

	c.update(func(s *State) {
		s.History = removeEntry(s.History, id)
	})

	return nil
}

func (c *Controller) SelectExample(text string) {
	c.update(func(s *State) {
		s.Prompt = text
		s.CurrentExample = text
	})
}

// shows a saved exchange and closes the history panel
func (c *Controller) LoadFromHistory(entry Entry) {
	c.update(func(s *State) {
		s.Prompt = entry.UserInput
		s.Output = entry.PythonOutput
		s.HistoryOpen = false
	})
}

// records the prompt being edited; no-op when unchanged
func (c *Controller) SetPrompt(text string) {
	c.mu.Lock()

	if c.state.Prompt == text {
		c.mu.Unlock()
		return
	}

	c.state.Prompt = text
	state := c.snapshotLocked()

	c.mu.Unlock()
	c.listener.StateChanged(state)
}

func (c *Controller) ToggleHistory() {
	c.update(func(s *State) {
		s.HistoryOpen = !s.HistoryOpen
	})
}

// publishes output for r; false once r is no longer the active run
func (c *Controller) publishOutput(r *run, output string) bool {
	c.mu.Lock()

	if c.run != r {
		c.mu.Unlock()
		return false
	}

	c.state.Output = output
	state := c.snapshotLocked()

	c.mu.Unlock()
	c.listener.StateChanged(state)

	return true
}

// ends r; false if it had already been cancelled
func (c *Controller) finish(r *run) bool {
	c.mu.Lock()

	if c.run != r {
		c.mu.Unlock()
		return false
	}

	c.run = nil
	c.state.Streaming = false
	state := c.snapshotLocked()

	c.mu.Unlock()
	c.listener.StateChanged(state)

	return true
}

func (c *Controller) setOutput(output string) {
	c.update(func(s *State) {
		s.Output = output
	})
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.listener.StateChanged(state)
}

func (c *Controller) notify(n Notification) {
	c.listener.Notified(n)
}

func (c *Controller) snapshotLocked() State {
	state := c.state
	state.History = copyEntries(c.state.History)
	return state
}

func asTransportError(err error) error {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return err
	}

	return &TransportError{Err: err}
}
