package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcatrace/internal/adapters/lci"
	"lcatrace/internal/adapters/memory"
	"lcatrace/internal/adapters/scorecache"
	"lcatrace/internal/domain"
)

const inventoryYAML = `
databases:
  - name: bio
    activities:
      - {code: co2, name: Carbon dioxide, unit: kilogram, location: GLO, type: emission}
  - name: a
    activities:
      - code: "1"
        name: bicycle
        unit: unit
        location: CH
        exchanges:
          - {type: production, amount: 1}
          - {input: "2", amount: 20, type: technosphere}
      - code: "2"
        name: steel
        unit: kilogram
        location: RER
        exchanges:
          - {type: production, amount: 1}
          - {input: bio/co2, amount: 2, type: biosphere}
methods:
  - name: gwp
    factors:
      - {flow: bio/co2, factor: 1}
`

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func importedInventory(t *testing.T) *memory.Inventory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inventoryYAML), 0644))

	inv := memory.NewInventory()
	imported := false
	text, isErr := call(t, importHandler(inv, func() { imported = true }), map[string]any{"path": path})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Imported 3 activities, 4 exchanges, 1 methods (1 factors)")
	assert.True(t, imported)
	return inv
}

func TestImportHandler_Errors(t *testing.T) {
	inv := memory.NewInventory()

	text, isErr := call(t, importHandler(inv, nil), map[string]any{})
	assert.True(t, isErr)
	assert.Equal(t, "path is required", text)

	_, isErr = call(t, importHandler(inv, nil), map[string]any{"path": filepath.Join(t.TempDir(), "missing.yaml")})
	assert.True(t, isErr)
}

func TestListActivitiesHandler(t *testing.T) {
	inv := importedInventory(t)

	text, isErr := call(t, listActivitiesHandler(inv), map[string]any{})
	require.False(t, isErr)
	assert.Equal(t, strings.Join([]string{
		"a/1  'bicycle' (unit, CH, None)",
		"a/2  'steel' (kilogram, RER, None)",
		"bio/co2  'Carbon dioxide' (kilogram, GLO, None)",
	}, "\n")+"\n", text)

	text, _ = call(t, listActivitiesHandler(inv), map[string]any{"processes_only": true})
	assert.NotContains(t, text, "bio/co2")

	text, _ = call(t, listActivitiesHandler(inv), map[string]any{"query": "steel"})
	assert.Equal(t, "a/2  'steel' (kilogram, RER, None)\n", text)

	text, _ = call(t, listActivitiesHandler(inv), map[string]any{"query": "titanium"})
	assert.Equal(t, "No results.", text)
}

func TestListMethodsHandler(t *testing.T) {
	inv := importedInventory(t)

	text, isErr := call(t, listMethodsHandler(inv), nil)
	require.False(t, isErr)
	assert.Equal(t, "gwp\n", text)
}

func TestUnitScoreHandler(t *testing.T) {
	inv := importedInventory(t)
	solver := lci.NewSolver(inv)

	text, isErr := call(t, unitScoreHandler(solver), map[string]any{"activity": "a/1", "method": "gwp"})
	require.False(t, isErr, text)
	assert.Equal(t, "40", text)

	text, isErr = call(t, unitScoreHandler(solver), map[string]any{"activity": "nope", "method": "gwp"})
	assert.True(t, isErr)
	assert.Contains(t, text, "database/code")
}

func TestSupplyChainHandler(t *testing.T) {
	inv := importedInventory(t)

	text, isErr := call(t, supplyChainHandler(inv), map[string]any{"activity": "a/1", "amount": 2.0})
	require.False(t, isErr, text)
	assert.Equal(t, "2: 'bicycle' (unit, CH, None)\n  40: 'steel' (kilogram, RER, None)\n", text)

	text, isErr = call(t, supplyChainHandler(inv), map[string]any{"activity": "a/1", "cutoff": 1.5})
	assert.True(t, isErr)
	assert.Contains(t, text, "cutoff")
}

func TestRecursiveCalculationHandler(t *testing.T) {
	inv := importedInventory(t)
	cache := scorecache.New(0)

	text, isErr := call(t, recursiveCalculationHandler(inv, lci.NewSolver(inv), cache), map[string]any{
		"activity": "a/1",
		"method":   "gwp",
	})
	require.False(t, isErr, text)
	assert.Equal(t, strings.Join([]string{
		domain.ScoreHeader,
		"0001 |    40 |     1 | 'bicycle' (unit, CH, None)",
		"  0001 |    40 |    20 | 'steel' (kilogram, RER, None)",
	}, "\n")+"\n", text)
	assert.Equal(t, 2, cache.Len())
}

func TestRecursiveCalculationHandler_Warnings(t *testing.T) {
	inv := memory.NewInventory()
	tx, _ := inv.BeginTx()
	tx.UpsertActivity(&domain.Activity{Key: domain.Key{Database: "a", Code: "1"}, Name: "x", Unit: "u", Location: "GLO"})
	tx.ReplaceExchanges(domain.Key{Database: "a", Code: "1"}, []domain.Exchange{
		{Input: domain.Key{Database: "a", Code: "gone"}, Output: domain.Key{Database: "a", Code: "1"}, Amount: 1, Role: domain.RoleTechnosphere},
	})
	tx.Commit()

	text, isErr := call(t, supplyChainHandler(inv), map[string]any{"activity": "a/1"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Warnings:")
	assert.Contains(t, text, "a/gone")
}
