// ABOUTME: History command lists, exports, or clears the chat history
// ABOUTME: Export writes the full conversation as CSV
package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var historyExport string

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or export chat history",
		RunE:  runHistory,
		Example: `  docuchat history
  docuchat history --export chat_history.csv
  docuchat history clear`,
	}

	cmd.Flags().StringVar(&historyExport, "export", "", "Write history to a CSV file")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete chat history",
		RunE:  runHistoryClear,
	})

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	turns := a.sessions.Default().History.All()
	if len(turns) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No chat history.")
		return nil
	}

	if historyExport != "" {
		f, err := os.Create(historyExport)
		if err != nil {
			return fmt.Errorf("creating %s: %w", historyExport, err)
		}
		defer f.Close()

		cw := csv.NewWriter(f)
		if err := cw.Write([]string{"timestamp", "role", "message"}); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		for _, turn := range turns {
			if err := cw.Write([]string{
				turn.Timestamp.UTC().Format(time.RFC3339),
				string(turn.Role),
				turn.Text,
			}); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing CSV: %w", err)
		}

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d turns to %s\n", len(turns), historyExport)
		}
		return nil
	}

	for _, turn := range turns {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", formatTime(turn.Timestamp), turn.Role, truncate(turn.Text, 120))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	if err := a.sessions.Default().History.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Chat history cleared")
	}
	return nil
}
