// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to chat with documents via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs DocuChat as an MCP (Model Context Protocol) server, letting LLM
agents query the knowledge base and ingest articles via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  docuchat mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docuchat": {
  #       "command": "docuchat",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"DocuChat",
		"0.1.0",
	)

	mcp.RegisterTools(server, a.engine, a.store, a.processor, a.sessions)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("DocuChat MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
