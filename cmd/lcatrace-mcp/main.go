package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"lcatrace/internal/adapters/lci"
	mcpadapter "lcatrace/internal/adapters/mcp"
	"lcatrace/internal/adapters/scorecache"
	"lcatrace/internal/adapters/sqlite"
	"lcatrace/internal/config"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default ~/"+config.DefaultConfigFile+")")
	dbFlag := flag.String("db", "", "path to the inventory database (default $"+config.EnvPrefix+"_DB or the XDG data dir)")
	flag.Parse()

	// Stdout carries the MCP protocol; logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	v := config.New()
	if *dbFlag != "" {
		v.Set("db", *dbFlag)
	}
	settings, err := config.Load(v, *cfgFlag)
	if err != nil {
		log.Fatalf("lcatrace-mcp: %v", err)
	}

	store := sqlite.NewStore()
	if err := store.Open(settings.DB); err != nil {
		log.Fatalf("lcatrace-mcp: %v", err)
	}
	defer store.Close()

	solver := lci.NewSolver(store)
	cache := scorecache.New(settings.CacheTTL)
	scorer := scorecache.NewProvider(solver, cache)

	mcpServer := server.NewMCPServer(
		"lcatrace-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store, scorer)
	mcpadapter.RegisterReportTools(mcpServer, store, scorer, cache)
	mcpadapter.RegisterWriteTools(mcpServer, store, func() {
		// Imported data changes every unit score
		solver.Invalidate()
		cache.Flush()
		logger.Info("inventory changed, scores reset")
	})

	logger.Info("serving", "db", store.Path())
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("lcatrace-mcp: %v", err)
	}
}
