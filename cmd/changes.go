package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// changesCommand constructs the 'changes' subcommand that prints the changed
// files reported by the configured source, one per line.
func changesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changes",
		Short: "Prints the changed files of the configured change source",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := newChangeSource(a.cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Changes.Timeout)
			defer cancel()

			files, err := src.ChangedFiles(ctx)
			if err != nil {
				return fmt.Errorf("changes: %w", err)
			}

			for _, f := range files {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}

			return nil
		},
	}
	addChangeFlags(cmd)

	return cmd
}
