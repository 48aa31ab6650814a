package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBPath(t *testing.T) {
	t.Setenv("LCATRACE_DB", "/tmp/inventory.db")
	assert.Equal(t, "/tmp/inventory.db", DBPath())

	t.Setenv("LCATRACE_DB", "")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/data", "lcatrace", "inventory.db"), DBPath())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "  ", s.Indent)
	assert.Equal(t, 10*time.Minute, s.CacheTTL)
	assert.Equal(t, Traversal{Amount: 1, MaxLevel: 7, Cutoff: 0.005}, s.SupplyChain)
	assert.Equal(t, Traversal{Amount: 1, MaxLevel: 3, Cutoff: 0.0025, LabelWidth: 130}, s.Recursive)
}

func TestLoad_FileAndEnv(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "lcatrace.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
db: /srv/inventory.db
method: climate change
indent: "--"
recursive:
  max_level: 5
  cutoff: 0.01
`), 0644))

	t.Setenv("LCATRACE_RECURSIVE_CUTOFF", "0.05")

	s, err := Load(New(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "/srv/inventory.db", s.DB)
	assert.Equal(t, "climate change", s.Method)
	assert.Equal(t, "--", s.Indent)
	assert.Equal(t, 5, s.Recursive.MaxLevel)
	assert.Equal(t, 0.05, s.Recursive.Cutoff)
	assert.Equal(t, 7, s.SupplyChain.MaxLevel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
