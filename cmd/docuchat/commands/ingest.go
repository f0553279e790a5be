// ABOUTME: Ingest command indexes local files or web articles
// ABOUTME: Chunks, embeds, and stores content in the knowledge base
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var ingestURL string

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Index documents into the knowledge base",
		Long: `Index documents into the knowledge base.

Accepts PDF, plain text, and Markdown files, or a web article URL.
Each document is chunked, embedded, and stored for retrieval.`,
		Args: cobra.ArbitraryArgs,
		RunE: runIngest,
		Example: `  # Index local files
  docuchat ingest report.pdf notes.txt

  # Index a web article
  docuchat ingest --url https://example.com/article`,
	}

	cmd.Flags().StringVar(&ingestURL, "url", "", "Web article URL to ingest")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && ingestURL == "" {
		return fmt.Errorf("provide at least one file or --url")
	}

	a, err := buildApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	total := 0

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		uploadID := uuid.NewString()
		chunks, err := a.processor.ProcessFile(filepath.Base(path), data, uploadID)
		if err != nil {
			return fmt.Errorf("processing %s: %w", path, err)
		}
		if len(chunks) > 0 {
			if err := a.store.Add(ctx, chunks); err != nil {
				return fmt.Errorf("indexing %s: %w", path, err)
			}
		}
		total += len(chunks)

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %s (%d chunks, upload %s)\n", filepath.Base(path), len(chunks), uploadID)
		}
	}

	if ingestURL != "" {
		uploadID := uuid.NewString()
		chunks, err := a.processor.ProcessWebArticle(ctx, ingestURL, uploadID)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", ingestURL, err)
		}
		if len(chunks) > 0 {
			if err := a.store.Add(ctx, chunks); err != nil {
				return fmt.Errorf("indexing %s: %w", ingestURL, err)
			}
		}
		total += len(chunks)

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %s (%d chunks, upload %s)\n", ingestURL, len(chunks), uploadID)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Done. %d chunks indexed.\n", total)
	}
	return nil
}
