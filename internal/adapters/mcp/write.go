package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"lcatrace/internal/adapters/fixture"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/ports"
)

// RegisterWriteTools adds the inventory import tool to the MCP server.
// onImport runs after every successful import so derived state (solver
// factorisation, score cache) can be dropped.
func RegisterWriteTools(s *server.MCPServer, store ports.InventoryStore, onImport func()) {
	s.AddTool(importTool(), importHandler(store, onImport))
}

// --- import ---

func importTool() mcp.Tool {
	return mcp.NewTool("import",
		mcp.WithDescription("Import databases, activities, exchanges and impact methods from a YAML inventory file. Existing activities with the same key are replaced."),
		mcp.WithString("path",
			mcp.Description("Path to the YAML inventory file"),
			mcp.Required(),
		),
	)
}

func importHandler(store ports.InventoryStore, onImport func()) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		dataset, err := fixture.LoadFile(path)
		if err != nil {
			return toolError(err)
		}

		stats, err := commands.NewImportCommand(store, dataset).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if onImport != nil {
			onImport()
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Imported %d activities, %d exchanges, %d methods (%d factors) in %s",
			stats.Activities, stats.Exchanges, stats.Methods, stats.Factors, stats.Duration.Round(1e6),
		)), nil
	}
}
