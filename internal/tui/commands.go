package tui

import (
	"context"

	"codeberg.org/pyscribe/server/internal/translator"
	tea "github.com/charmbracelet/bubbletea"
)

// runs one translation in bubbletea's command goroutine
func submitCmd(ctrl *translator.Controller, prompt string) tea.Cmd {
	return func() tea.Msg {
		result, err := ctrl.Submit(context.Background(), prompt)
		return submitDoneMsg{result: result, err: err}
	}
}

func loadHistoryCmd(ctrl *translator.Controller, limit int) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{err: ctrl.LoadHistory(context.Background(), limit)}
	}
}

func deleteEntryCmd(ctrl *translator.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{id: id, err: ctrl.DeleteEntry(context.Background(), id)}
	}
}
