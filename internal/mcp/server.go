package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mustaphathe3rd/neighbourhood/internal/config"
	"github.com/mustaphathe3rd/neighbourhood/internal/region"
	"github.com/mustaphathe3rd/neighbourhood/internal/searcher"
	"github.com/mustaphathe3rd/neighbourhood/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "neighbourhood-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	searcher *searcher.Searcher
	logger   *slog.Logger
}

// NewServer creates a new MCP server instance from the given configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// stdout carries the MCP protocol; all logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".neighbourhood", "catalog.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Region boundaries are optional: without them every query resolves to
	// no region and the out-of-state flag stays unset.
	var boundaries []region.Boundary
	if cfg.BoundariesPath != "" {
		boundaries, err = region.LoadFile(cfg.BoundariesPath)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to load region boundaries: %w", err)
		}
	}
	resolver := region.NewResolver(boundaries, cfg.DefaultRadiiKm)

	srch, err := searcher.New(store, resolver,
		searcher.WithLogger(logger),
		searcher.WithTimeout(cfg.SearchTimeout),
		searcher.WithCacheTTL(cfg.CacheTTL),
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize search engine: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		storage:  store,
		searcher: srch,
		logger:   logger,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	s.logger.Info("mcp server starting", "name", ServerName, "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

// Close releases the server's storage without serving.
func (s *Server) Close() error {
	return s.storage.Close()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchPricesTool(), s.handleSearchPrices)
	s.mcp.AddTool(productPricesTool(), s.handleProductPrices)
	s.mcp.AddTool(productByBarcodeTool(), s.handleProductByBarcode)
	s.mcp.AddTool(nearbyMarketsTool(), s.handleNearbyMarkets)
	s.mcp.AddTool(listStatesTool(), s.handleListStates)
	s.mcp.AddTool(listCitiesTool(), s.handleListCities)
	s.mcp.AddTool(listMarketsTool(), s.handleListMarkets)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
