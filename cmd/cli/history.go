package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or delete saved translations",
	}

	cmd.AddCommand(newHistoryListCmd(opts), newHistoryDeleteCmd(opts))

	return cmd
}

func newHistoryListCmd(opts *globalOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved translations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// without --session every session is listed
			entries, err := opts.client().ListConversations(cmd.Context(), opts.sessionID, limit)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "no saved translations")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSAVED\tPROMPT")

			for _, entry := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n",
					entry.ID,
					entry.Timestamp.Local().Format(time.DateTime),
					oneLine(entry.UserInput, 60),
				)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", opts.cfg.HistoryLimit, "maximum number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON including the generated code")

	return cmd
}

func newHistoryDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved translation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().DeleteConversation(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n-1]) + "…"
	}

	return s
}
