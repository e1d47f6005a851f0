package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mustaphathe3rd/neighbourhood/internal/mcp"
	"github.com/mustaphathe3rd/neighbourhood/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long:  "Serve the catalog to MCP clients over stdio. Logs go to stderr; stdout carries the protocol.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("starting mcp server",
		"version", mcp.ServerVersion,
		"build_mode", storage.BuildMode,
		"driver", storage.DriverName)

	server, err := mcp.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
