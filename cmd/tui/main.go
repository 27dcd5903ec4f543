package main

import (
	"fmt"
	"io"
	"os"

	"codeberg.org/pyscribe/server/internal/config"
	"codeberg.org/pyscribe/server/internal/logger"
	"codeberg.org/pyscribe/server/internal/translator"
	"codeberg.org/pyscribe/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// the alt screen owns the terminal, so logs go to a file or nowhere
	var logOutput io.Writer = io.Discard

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close() //nolint:errcheck

		logOutput = f
	}

	logger.Configure(cfg.Environment, logOutput)

	session := translator.NewSession()
	logger.Info("starting pyscribe tui", "endpoint", cfg.Endpoint, "session_id", session.ID())

	app := tui.NewApp(translator.NewClient(cfg.Endpoint), session, cfg.HistoryLimit)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running pyscribe: %v\n", err)
		os.Exit(1)
	}
}
