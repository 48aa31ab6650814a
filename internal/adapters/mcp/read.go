package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"lcatrace/internal/application"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// RegisterReadTools adds the inventory browsing tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, inv ports.Inventory, scorer ports.UnitScoreProvider) {
	s.AddTool(listActivitiesTool(), listActivitiesHandler(inv))
	s.AddTool(listMethodsTool(), listMethodsHandler(inv))
	s.AddTool(unitScoreTool(), unitScoreHandler(scorer))
}

// --- list_activities ---

func listActivitiesTool() mcp.Tool {
	return mcp.NewTool("list_activities",
		mcp.WithDescription("List inventory activities as database/code references. With a query, ranks activities by fuzzy match on name, location and key."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters). Omit to list everything."),
		),
		mcp.WithBoolean("processes_only",
			mcp.Description("Hide elementary flows (emissions and natural resources)"),
		),
	)
}

func listActivitiesHandler(inv ports.Inventory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		processesOnly := req.GetBool("processes_only", false)

		if query == "" {
			activities, err := commands.NewListActivitiesCommand(inv, processesOnly).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return formatEntities(activities, formatActivity)
		}

		results, err := commands.NewSearchCommand(inv, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var activities []domain.Activity
		for _, r := range results {
			if processesOnly && r.Type.IsFlow() {
				continue
			}
			activities = append(activities, r.Activity)
		}
		return formatEntities(activities, formatActivity)
	}
}

// --- list_methods ---

func listMethodsTool() mcp.Tool {
	return mcp.NewTool("list_methods",
		mcp.WithDescription("List the impact assessment methods available for scoring."),
	)
}

func listMethodsHandler(inv ports.Inventory) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		methods, err := commands.NewListMethodsCommand(inv).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(methods, func(m domain.Method) string { return string(m) })
	}
}

// --- unit_score ---

func unitScoreTool() mcp.Tool {
	return mcp.NewTool("unit_score",
		mcp.WithDescription("Compute the impact score of one unit of an activity's reference product."),
		mcp.WithString("activity",
			mcp.Description("Activity reference as database/code"),
			mcp.Required(),
		),
		mcp.WithString("method",
			mcp.Description("Impact assessment method name"),
			mcp.Required(),
		),
	)
}

func unitScoreHandler(scorer ports.UnitScoreProvider) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := application.ParseKey(req.GetString("activity", ""))
		if err != nil {
			return toolError(err)
		}
		method := domain.Method(req.GetString("method", ""))

		score, err := commands.NewUnitScoreCommand(scorer, key, method).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%g", score)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatActivity(a domain.Activity) string {
	return fmt.Sprintf("%s  %s", a.Key, a.Label().Text)
}
