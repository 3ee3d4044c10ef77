package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosqlite-go/nosqlite/internal/alloc"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 16, cfg.NodeSize)
	assert.Equal(t, "best_fit", cfg.AllocatorStrategy)
	require.NoError(t, cfg.Validate())
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nosqlite.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
page_size = 4096
node_size = 32
allocator_strategy = "worst_fit"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.NodeSize)
	strategy, err := cfg.Strategy()
	require.NoError(t, err)
	assert.Equal(t, alloc.WorstFit, strategy)
}

func TestLoadRejectsWrongPageSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nosqlite.toml")
	require.NoError(t, os.WriteFile(path, []byte(`page_size = 8192`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nosqlite.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
page_size = 4096
allocator_strategy = "random"
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
