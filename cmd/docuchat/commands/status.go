// ABOUTME: Status command reports knowledge base backend and chunk count
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show knowledge base status",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	count, err := a.store.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting chunks: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Backend:    %s\n", a.cfg.StoreBackend)
	if a.cfg.StoreBackend == "qdrant" {
		fmt.Fprintf(cmd.OutOrStdout(), "Collection: %s\n", a.cfg.QdrantCollection)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Chunks:     %d\n", count)
	return nil
}
