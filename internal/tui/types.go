package tui

import (
	"codeberg.org/pyscribe/server/internal/translator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// which pane receives key presses
type Focus int

const (
	FocusPrompt Focus = iota
	FocusHistory
)

// main TUI application model
type Model struct {
	ctrl         *translator.Controller
	bridge       *bridge
	historyLimit int

	width  int
	height int
	ready  bool
	focus  Focus

	prompt   textarea.Model
	output   viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	state         translator.State
	rendered      string // output the viewport currently shows
	stale         bool   // viewport needs a render regardless of rendered
	status        *translator.Notification
	examples      []string
	exampleIdx    int
	historyCursor int
}

// carries controller updates into the bubbletea loop
type controllerMsg struct {
	state         translator.State
	hasState      bool
	notifications []translator.Notification
}

// sent when a Submit call returns
type submitDoneMsg struct {
	result *translator.Result
	err    error
}

type historyLoadedMsg struct {
	err error
}

type entryDeletedMsg struct {
	id  string
	err error
}
