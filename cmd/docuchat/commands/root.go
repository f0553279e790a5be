// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: All subcommands hang off the docuchat root
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

const banner = `
██████╗  ██████╗  ██████╗██╗   ██╗ ██████╗██╗  ██╗ █████╗ ████████╗
██╔══██╗██╔═══██╗██╔════╝██║   ██║██╔════╝██║  ██║██╔══██╗╚══██╔══╝
██║  ██║██║   ██║██║     ██║   ██║██║     ███████║███████║   ██║
██║  ██║██║   ██║██║     ██║   ██║██║     ██╔══██║██╔══██║   ██║
██████╔╝╚██████╔╝╚██████╗╚██████╔╝╚██████╗██║  ██║██║  ██║   ██║
╚═════╝  ╚═════╝  ╚═════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docuchat",
		Short: "Chat with your documents",
		Long: banner + `
DocuChat answers questions grounded in your own documents. Upload PDFs,
text, or web articles; they are chunked, embedded, and indexed in a
vector store. Questions retrieve the most similar chunks and the answer
is generated strictly from them.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default docuchat.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewServeCmd(),
		NewIngestCmd(),
		NewAskCmd(),
		NewSearchCmd(),
		NewStatusCmd(),
		NewClearCmd(),
		NewHistoryCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
