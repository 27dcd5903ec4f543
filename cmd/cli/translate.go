package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"codeberg.org/pyscribe/server/internal/translator"
	"github.com/spf13/cobra"
)

func newTranslateCmd(opts *globalOptions) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "translate [prompt...]",
		Short: "Stream a translation to stdout and save it to history",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")

			// read the prompt from stdin when none is given, e.g. echo "..." | pyscribe translate
			if prompt == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read prompt: %w", err)
				}
				prompt = string(raw)
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			printer := &streamPrinter{w: out}

			ctrlOpts := []translator.Option{
				translator.WithListener(translator.ListenerFuncs{
					OnState: printer.print,
					OnNotify: func(n translator.Notification) {
						fmt.Fprintf(errOut, "%s: %s\n", n.Title, n.Message)
					},
				}),
			}

			if noSave {
				ctrlOpts = append(ctrlOpts, translator.WithoutPersistence())
			}

			session := opts.session()
			ctrl := translator.NewController(opts.client(), session, ctrlOpts...)

			result, err := ctrl.Submit(cmd.Context(), prompt)
			printer.finish()

			switch {
			case err != nil && notified(err):
				return errReported
			case err != nil:
				return err
			case result.Cancelled:
				fmt.Fprintln(errOut, "translation cancelled")
			case result.Saved != nil:
				fmt.Fprintf(errOut, "saved as %s in %s\n", result.Saved.ID, session.ID())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the translation")

	return cmd
}

// errors the controller already surfaced through a notification
func notified(err error) bool {
	var (
		transportErr *translator.TransportError
		upstreamErr  *translator.UpstreamError
		persistErr   *translator.PersistenceError
	)

	return errors.Is(err, translator.ErrValidation) ||
		errors.As(err, &transportErr) ||
		errors.As(err, &upstreamErr) ||
		errors.As(err, &persistErr)
}

// writes only the part of the output not yet printed
type streamPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	printed string
}

func (p *streamPrinter) print(state translator.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !strings.HasPrefix(state.Output, p.printed) {
		// output was replaced, e.g. by the failure marker
		fmt.Fprint(p.w, "\n"+state.Output)
		p.printed = state.Output
		return
	}

	fmt.Fprint(p.w, state.Output[len(p.printed):])
	p.printed = state.Output
}

func (p *streamPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.printed != "" && !strings.HasSuffix(p.printed, "\n") {
		fmt.Fprintln(p.w)
	}
}
