package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaultsWhenNoFlagsGiven(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, "dataset.jsonl", cfg.Dataset)
	require.Equal(t, 120, cfg.TurnTimeoutSec)
	require.Equal(t, "echo", cfg.Agent)
	require.NotEmpty(t, cfg.RunID)
}

func TestParseFlagOverridesDefault(t *testing.T) {
	cfg, err := Parse([]string{"--dataset", "custom.jsonl", "--turn-retries", "3"})
	require.NoError(t, err)
	require.Equal(t, "custom.jsonl", cfg.Dataset)
	require.Equal(t, 3, cfg.TurnRetries)
}

func TestParseFlagWinsOverConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset: from_file.jsonl\nturn_retries: 2\n"), 0o644))

	cfg, err := Parse([]string{"--config", path, "--dataset", "from_flag.jsonl"})
	require.NoError(t, err)
	require.Equal(t, "from_flag.jsonl", cfg.Dataset)
	require.Equal(t, 2, cfg.TurnRetries)
}

func TestParseRunIDPreservedWhenProvided(t *testing.T) {
	cfg, err := Parse([]string{"--run-id", "existing-run"})
	require.NoError(t, err)
	require.Equal(t, "existing-run", cfg.RunID)
}
