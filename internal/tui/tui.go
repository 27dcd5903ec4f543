package tui

import (
	"errors"

	"codeberg.org/pyscribe/server/internal/examples"
	"codeberg.org/pyscribe/server/internal/logger"
	"codeberg.org/pyscribe/server/internal/translator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	promptHeight  = 4
	historyWidth  = 36
	chromeHeight  = 9 // header, pane borders, status and help lines
	minPaneHeight = 3
)

// builds the app and its controller; history for session is loaded on Init
func NewApp(backend translator.Backend, session *translator.Session, historyLimit int) *Model {
	b := newBridge()
	ctrl := translator.NewController(backend, session, translator.WithListener(b))

	ta := textarea.New()
	ta.Placeholder = "describe the Python code you want, e.g. \"read a CSV file and convert it to JSON\""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(promptHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorYellow)

	return &Model{
		ctrl:         ctrl,
		bridge:       b,
		historyLimit: historyLimit,
		prompt:       ta,
		output:       viewport.New(0, 0),
		spinner:      sp,
		examples:     examples.Prompts(),
		exampleIdx:   -1,
	}
}

func (m *Model) Controller() *translator.Controller {
	return m.ctrl
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.bridge.wait(),
		loadHistoryCmd(m.ctrl, m.historyLimit),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case controllerMsg:
		m.applyController(msg)
		return m, m.bridge.wait()

	case submitDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, translator.ErrStreamInProgress) {
			logger.Debug("translation ended with error", "error", msg.err)
		}
		return m, nil

	case historyLoadedMsg:
		// a failed load is only logged by the controller; the panel keeps what it had
		return m, nil

	case entryDeletedMsg:
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Streaming {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updatePrompt(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.ctrl.Cancel()
		return m, tea.Quit

	case "ctrl+s":
		if m.state.Streaming {
			return m, nil
		}

		m.status = nil
		m.ctrl.SetPrompt(m.prompt.Value())
		return m, tea.Batch(submitCmd(m.ctrl, m.prompt.Value()), m.spinner.Tick)

	case "esc":
		if m.state.Streaming {
			m.ctrl.Cancel()
			return m, nil
		}

		if m.focus == FocusHistory {
			m.ctrl.ToggleHistory()
		}
		return m, nil

	case "ctrl+e":
		if len(m.examples) == 0 {
			return m, nil
		}

		m.exampleIdx = (m.exampleIdx + 1) % len(m.examples)
		m.ctrl.SelectExample(m.examples[m.exampleIdx])
		m.prompt.SetValue(m.examples[m.exampleIdx])
		return m, nil

	case "ctrl+h":
		m.ctrl.ToggleHistory()
		return m, nil
	}

	if m.focus == FocusHistory {
		return m.handleHistoryKey(msg)
	}

	switch msg.String() {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	return m.updatePrompt(msg)
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.state.History

	switch msg.String() {
	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}

	case "down", "j":
		if m.historyCursor < len(history)-1 {
			m.historyCursor++
		}

	case "enter":
		if m.historyCursor < len(history) {
			entry := history[m.historyCursor]
			m.ctrl.LoadFromHistory(entry)
			m.prompt.SetValue(entry.UserInput)
		}

	case "d", "delete":
		if m.historyCursor < len(history) {
			return m, deleteEntryCmd(m.ctrl, history[m.historyCursor].ID)
		}
	}

	return m, nil
}

func (m *Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.ctrl.SetPrompt(m.prompt.Value())

	return m, cmd
}

// folds a controller update into the widgets
func (m *Model) applyController(msg controllerMsg) {
	if msg.hasState {
		layoutChanged := m.state.HistoryOpen != msg.state.HistoryOpen
		// the textarea owns the prompt; queued states may predate the latest keys
		m.state = msg.state

		if m.state.HistoryOpen {
			m.focus = FocusHistory
			m.prompt.Blur()
		} else {
			m.focus = FocusPrompt
			m.prompt.Focus()
		}

		m.clampCursor()

		if layoutChanged && m.ready {
			m.resize()
		} else {
			m.renderOutput()
		}
	}

	if n := len(msg.notifications); n > 0 {
		last := msg.notifications[n-1]
		m.status = &last
	}
}

func (m *Model) clampCursor() {
	if m.historyCursor >= len(m.state.History) {
		m.historyCursor = max(0, len(m.state.History)-1)
	}
}

func (m *Model) resize() {
	outputWidth := m.width - 4
	if m.state.HistoryOpen {
		outputWidth -= historyWidth + 2
	}

	m.prompt.SetWidth(max(10, m.width-4))
	m.output.Width = max(10, outputWidth)
	m.output.Height = max(minPaneHeight, m.height-promptHeight-chromeHeight)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, m.output.Width-2)),
	)

	if err != nil {
		logger.Warn("failed to create markdown renderer", "error", err)
		renderer = nil
	}

	m.renderer = renderer
	m.ready = true
	m.stale = true
	m.renderOutput()
}

// re-renders the output pane when the text changed
func (m *Model) renderOutput() {
	if !m.ready || (!m.stale && m.rendered == m.state.Output) {
		return
	}

	m.rendered = m.state.Output
	m.stale = false
	m.output.SetContent(renderPython(m.renderer, m.state.Output))

	if m.state.Streaming {
		m.output.GotoBottom()
	}
}

func renderPython(renderer *glamour.TermRenderer, code string) string {
	if code == "" {
		return infoStyle.Render("generated Python code appears here")
	}

	if renderer == nil {
		return code
	}

	out, err := renderer.Render("```python\n" + code + "\n```\n")
	if err != nil {
		return code
	}

	return out
}
