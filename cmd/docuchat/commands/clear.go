// ABOUTME: Clear command removes every indexed chunk from the knowledge base
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

// NewClearCmd creates the clear command
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all indexed chunks",
		Long: `Delete all indexed chunks from the knowledge base.

This cannot be undone. Pass --yes to skip the confirmation prompt.`,
		RunE: runClear,
	}

	cmd.Flags().BoolVar(&clearYes, "yes", false, "Skip confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		fmt.Fprint(cmd.OutOrStdout(), "Delete all indexed chunks? [y/N]: ")
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	a, err := buildApp()
	if err != nil {
		return err
	}

	if err := a.store.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing knowledge base: %w", err)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Knowledge base cleared")
	}
	return nil
}
