package main

import (
	"fmt"

	"codeberg.org/pyscribe/server/internal/examples"
	"github.com/spf13/cobra"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Print the example prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, prompt := range examples.Prompts() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, prompt)
			}
			return nil
		},
	}
}
