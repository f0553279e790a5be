// ABOUTME: Ask command answers a single question from the knowledge base
// ABOUTME: Prints the grounded answer and its sources
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chat"
)

var askSourceFilter string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about your documents",
		Long: `Ask a question about your documents.

The answer is generated strictly from retrieved document chunks. When
the knowledge base holds nothing relevant, DocuChat says so instead of
guessing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
		Example: `  docuchat ask "What were the quarterly numbers?"

  # Scope retrieval to one document
  docuchat ask --source report.pdf "What does the summary say?"`,
	}

	cmd.Flags().StringVar(&askSourceFilter, "source", "", "Upload id or source name to scope retrieval to")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	sess := a.sessions.Default()

	result := a.engine.Answer(cmd.Context(), question, sess.History, askSourceFilter)
	if result.Outcome == chat.OutcomeProviderError || result.Outcome == chat.OutcomeValidation {
		return fmt.Errorf("%s", result.Err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Response)

	if verbose && len(result.Sources) > 0 {
		seen := make(map[string]bool)
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for _, c := range result.Sources {
			if !seen[c.Source] {
				seen[c.Source] = true
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", c.Source)
			}
		}
	}
	return nil
}
