// ABOUTME: Serve command runs the DocuChat HTTP server
// ABOUTME: Hosts the chat UI, REST API, and Prometheus metrics
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/httpapi"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/observability"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the DocuChat HTTP server",
		Long: `Start the DocuChat HTTP server.

Serves the browser chat page, the REST API for chat and document
ingestion, and Prometheus metrics.`,
		RunE: runServe,
		Example: `  # Serve on the default address (:8080)
  docuchat serve

  # Serve on a specific address
  docuchat serve --addr :9000`,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from DOCUCHAT_LISTEN or :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = a.cfg.ListenAddr
	}

	metrics := observability.NewMetrics("docuchat")
	srv := httpapi.New(*a.cfg, a.sessions, a.engine, a.store, a.processor, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sessions.StartJanitor(ctx, time.Minute)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.ListenAndServe()
	}()

	if !quiet {
		log.Printf("DocuChat listening on %s", addr)
	}

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, draining connections...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
