package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if !m.ready {
		return "\n  starting pyscribe..."
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	outputPane := m.paneStyle(FocusPrompt).
		Width(m.output.Width + 2).
		Render(paneTitleStyle.Render("Python") + "\n" + m.output.View())

	if m.state.HistoryOpen {
		outputPane = lipgloss.JoinHorizontal(lipgloss.Top, outputPane, m.historyView())
	}

	b.WriteString(outputPane)
	b.WriteString("\n")

	b.WriteString(m.paneStyle(FocusPrompt).
		Width(m.width - 2).
		Render(m.prompt.View()))
	b.WriteString("\n")

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return b.String()
}

func (m *Model) headerView() string {
	title := titleStyle.Render("pyscribe")
	subtitle := subtitleStyle.Render("English → Python")

	session := infoStyle.Render(m.ctrl.Session().ID())
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(subtitle)-lipgloss.Width(session)-2)

	return title + " " + subtitle + strings.Repeat(" ", gap) + session
}

func (m *Model) paneStyle(pane Focus) lipgloss.Style {
	if m.focus == pane {
		return focusedPaneStyle
	}

	return paneStyle
}

func (m *Model) historyView() string {
	var b strings.Builder

	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("History (%d)", len(m.state.History))))
	b.WriteString("\n")

	if len(m.state.History) == 0 {
		b.WriteString(infoStyle.Render("no saved translations yet"))
	}

	rows := max(1, m.output.Height-1)
	start := max(0, m.historyCursor-rows+1)

	for i := start; i < len(m.state.History) && i < start+rows; i++ {
		entry := m.state.History[i]
		line := truncate(entry.UserInput, historyWidth-12) + " " + infoStyle.Render(entry.Timestamp.Local().Format(time.Kitchen))

		if i == m.historyCursor {
			b.WriteString(historyItemSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(historyItemStyle.Render(line))
		}

		b.WriteString("\n")
	}

	return m.paneStyle(FocusHistory).
		Width(historyWidth).
		Height(m.output.Height + 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) statusView() string {
	switch {
	case m.state.Streaming:
		return m.spinner.View() + infoStyle.Render(" translating... esc to cancel")
	case m.status != nil:
		return errorStyle.Render(m.status.Title+": ") + subtitleStyle.Render(m.status.Message)
	case m.state.CurrentExample != "" && m.state.Prompt == m.state.CurrentExample:
		return infoStyle.Render(fmt.Sprintf("example %d of %d", m.exampleIdx+1, len(m.examples)))
	default:
		return ""
	}
}

func (m *Model) helpView() string {
	if m.focus == FocusHistory {
		return helpStyle.Render("[↑/↓: Move] [Enter: Load] [d: Delete] [Ctrl+H/Esc: Close] [Ctrl+C: Quit]")
	}

	return helpStyle.Render("[Ctrl+S: Translate] [Esc: Cancel] [Ctrl+E: Example] [Ctrl+H: History] [PgUp/PgDn: Scroll] [Ctrl+C: Quit]")
}

// shortens s to n runes with an ellipsis
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)

	if len(runes) <= n {
		return s
	}

	return string(runes[:max(0, n-1)]) + "…"
}
