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

// RegisterReportTools adds the supply chain traversal tools to the MCP
// server. cache may be nil.
func RegisterReportTools(s *server.MCPServer, graph ports.GraphAccessor, scorer ports.UnitScoreProvider, cache ports.ScoreCache) {
	s.AddTool(supplyChainTool(), supplyChainHandler(graph))
	s.AddTool(recursiveCalculationTool(), recursiveCalculationHandler(graph, scorer, cache))
}

// --- supply_chain ---

func supplyChainTool() mcp.Tool {
	defaults := commands.DefaultSupplyChainOptions()
	return mcp.NewTool("supply_chain",
		mcp.WithDescription("Print the quantities required along the supply chain of an activity, one indented line per upstream activity."),
		mcp.WithString("activity",
			mcp.Description("Root activity reference as database/code"),
			mcp.Required(),
		),
		mcp.WithNumber("amount",
			mcp.Description("Demand for the root activity's product"),
			mcp.DefaultNumber(defaults.Amount),
		),
		mcp.WithNumber("max_level",
			mcp.Description("Deepest level to print; the root is level 0"),
			mcp.DefaultNumber(float64(defaults.MaxLevel)),
		),
		mcp.WithNumber("cutoff",
			mcp.Description("Skip upstream activities whose required amount is below this value"),
			mcp.DefaultNumber(defaults.Cutoff),
		),
	)
}

func supplyChainHandler(graph ports.GraphAccessor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := application.ParseKey(req.GetString("activity", ""))
		if err != nil {
			return toolError(err)
		}

		opts := commands.DefaultSupplyChainOptions()
		opts.Amount = req.GetFloat("amount", opts.Amount)
		opts.MaxLevel = req.GetInt("max_level", opts.MaxLevel)
		opts.Cutoff = req.GetFloat("cutoff", opts.Cutoff)

		var sb strings.Builder
		result, err := commands.NewSupplyChainCommand(graph, root, opts).Execute(ctx, &sb)
		if err != nil {
			return toolError(err)
		}
		return reportResult(&sb, result), nil
	}
}

// --- recursive_calculation ---

func recursiveCalculationTool() mcp.Tool {
	defaults := commands.DefaultRecursiveOptions()
	return mcp.NewTool("recursive_calculation",
		mcp.WithDescription("Show how the impact score of an activity is distributed over its supply chain. Each row gives the fraction of the root score, the absolute score, the amount and the activity."),
		mcp.WithString("activity",
			mcp.Description("Root activity reference as database/code"),
			mcp.Required(),
		),
		mcp.WithString("method",
			mcp.Description("Impact assessment method name"),
			mcp.Required(),
		),
		mcp.WithNumber("amount",
			mcp.Description("Demand for the root activity's product"),
			mcp.DefaultNumber(defaults.Amount),
		),
		mcp.WithNumber("max_level",
			mcp.Description("Deepest level to print; the root is level 0"),
			mcp.DefaultNumber(float64(defaults.MaxLevel)),
		),
		mcp.WithNumber("cutoff",
			mcp.Description("Do not expand activities contributing less than this fraction of the root score"),
			mcp.DefaultNumber(defaults.Cutoff),
		),
	)
}

func recursiveCalculationHandler(graph ports.GraphAccessor, scorer ports.UnitScoreProvider, cache ports.ScoreCache) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := application.ParseKey(req.GetString("activity", ""))
		if err != nil {
			return toolError(err)
		}
		method := domain.Method(req.GetString("method", ""))

		opts := commands.DefaultRecursiveOptions()
		opts.Amount = req.GetFloat("amount", opts.Amount)
		opts.MaxLevel = req.GetInt("max_level", opts.MaxLevel)
		opts.Cutoff = req.GetFloat("cutoff", opts.Cutoff)
		opts.Cache = cache

		var sb strings.Builder
		result, err := commands.NewRecursiveCalculationCommand(graph, scorer, root, method, opts).Execute(ctx, &sb)
		if err != nil {
			return toolError(err)
		}
		return reportResult(&sb, result), nil
	}
}

// reportResult appends collected warnings below the report
func reportResult(sb *strings.Builder, result *commands.Result) *mcp.CallToolResult {
	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(sb, "- %s %s", w.Kind, w.Activity)
			if w.Detail != "" {
				fmt.Fprintf(sb, ": %s", w.Detail)
			}
			sb.WriteByte('\n')
		}
	}
	return mcp.NewToolResultText(sb.String())
}
