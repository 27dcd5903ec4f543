package main

import (
	"errors"

	"codeberg.org/pyscribe/server/internal/config"
	"codeberg.org/pyscribe/server/internal/translator"
	"github.com/spf13/cobra"
)

// returned when the failure was already printed; exits non-zero without repeating it
var errReported = errors.New("error already reported")

// flags shared by every subcommand
type globalOptions struct {
	endpoint  string
	sessionID string
	cfg       *config.ClientConfig
}

func (o *globalOptions) client() *translator.Client {
	return translator.NewClient(o.endpoint)
}

func (o *globalOptions) session() *translator.Session {
	return translator.ResumeSession(o.sessionID)
}

func newRootCmd(cfg *config.ClientConfig) *cobra.Command {
	opts := &globalOptions{cfg: cfg}

	root := &cobra.Command{
		Use:   "pyscribe",
		Short: "Translate English descriptions into Python code",
		Long: `pyscribe streams Python code generated from a plain English description
and keeps a per-session history of saved translations.

Examples:
  pyscribe translate "read a CSV file and convert it to JSON"
  pyscribe history list --session session_1234 --limit 10
  pyscribe history delete 3f2b...
  pyscribe examples`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", cfg.Endpoint, "pyscribe server origin")
	root.PersistentFlags().StringVar(&opts.sessionID, "session", "", "session id to save under and list (default: a new session)")

	root.AddCommand(
		newTranslateCmd(opts),
		newHistoryCmd(opts),
		newExamplesCmd(),
	)

	return root
}
