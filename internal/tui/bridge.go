package tui

import (
	"sync"

	"codeberg.org/pyscribe/server/internal/translator"
	tea "github.com/charmbracelet/bubbletea"
)

// translator.Listener that coalesces updates for the UI goroutine. Only the
// latest state is kept, so a fast stream never blocks on a slow render.
type bridge struct {
	mu            sync.Mutex
	state         translator.State
	hasState      bool
	notifications []translator.Notification
	signal        chan struct{}
}

func newBridge() *bridge {
	return &bridge{signal: make(chan struct{}, 1)}
}

func (b *bridge) StateChanged(state translator.State) {
	b.mu.Lock()
	b.state = state
	b.hasState = true
	b.mu.Unlock()

	b.wake()
}

func (b *bridge) Notified(n translator.Notification) {
	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	b.wake()
}

func (b *bridge) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// blocks until something changed and returns it as one message
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return b.drain()
	}
}

func (b *bridge) drain() controllerMsg {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg := controllerMsg{
		state:         b.state,
		hasState:      b.hasState,
		notifications: b.notifications,
	}

	b.notifications = nil

	return msg
}
