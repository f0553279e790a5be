// ABOUTME: Search command runs a raw similarity search over indexed chunks
// ABOUTME: Shows matches with scores without generating an answer
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

var (
	searchLimit    int
	searchUploadID string
	searchSource   string
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed chunks by similarity",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
		Example: `  docuchat search "revenue growth"
  docuchat search --limit 10 --source report.pdf "risk factors"`,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum number of results")
	cmd.Flags().StringVar(&searchUploadID, "upload", "", "Restrict results to one upload id")
	cmd.Flags().StringVar(&searchSource, "source", "", "Restrict results to one source name")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	a, err := buildApp()
	if err != nil {
		return err
	}

	var filter *store.Filter
	if searchUploadID != "" || searchSource != "" {
		filter = &store.Filter{UploadID: searchUploadID, Source: searchSource}
	}

	query := strings.Join(args, " ")
	results, err := a.store.Search(cmd.Context(), query, searchLimit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. [%.3f] %s (chunk %d)\n", i+1, r.Score, r.Chunk.Source, r.Chunk.Sequence)
		fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", truncate(r.Chunk.Text, 120))
	}
	return nil
}
