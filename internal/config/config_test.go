package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.jsonc"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filedict.jsonc")
	writeFile(t, path, `{
		// async trades durability for throughput
		"durability": "async",
		"cache_size": 64,
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DurabilityAsync, cfg.Durability)
	require.Equal(t, 64, cfg.CacheSize)
	require.Equal(t, Default().FreeSlotMin, cfg.FreeSlotMin)
}

func TestLoad_RejectsInvalidDurability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filedict.jsonc")
	writeFile(t, path, `{"durability": "eventual"}`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoad_RejectsMalformedJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filedict.jsonc")
	writeFile(t, path, `{"durability": `)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidJSONC)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	err := os.WriteFile(path, []byte(contents), 0o644)
	require.NoError(t, err)
}
