package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/archlens-labs/archlens/internal/config"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, intconfig.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("workspace", "", "")
	flags.String("cache-dir", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, intconfig.DefaultCacheDir), cfg.CacheDir)
	assert.Equal(t, intconfig.DefaultScanWorkers, cfg.Scan.Workers)
}

func TestLoadConfig_FileValues(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
workspace: ws.yaml
cache_dir: .custom
verbose: true
classify:
  - pattern: "Legacy.*"
    layer: infrastructure
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "ws.yaml"), cfg.Workspace)
	assert.Equal(t, filepath.Join(dir, ".custom"), cfg.CacheDir)
	assert.True(t, cfg.Verbose)
	require.Len(t, cfg.Classify, 1)
	assert.Equal(t, "Legacy.*", cfg.Classify[0].Pattern)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: text\n")
	t.Setenv("ARCHLENS_OUTPUT", "json")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	path := writeConfig(t, t.TempDir(), "")
	t.Setenv("ARCHLENS_OUTPUT", "json")

	flags := newFlagSet()
	require.NoError(t, flags.Parse([]string{"--output", "markdown"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	t.Cleanup(ResetConfig)
	path := writeConfig(t, t.TempDir(), "output: text\n")

	flags := newFlagSet()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat)
}

func TestLoadConfig_AbsolutePathsKept(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "ws.yaml")
	path := writeConfig(t, dir, "workspace: "+abs+"\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Workspace)
}

func TestLoadConfig_MalformedFileFails(t *testing.T) {
	t.Cleanup(ResetConfig)
	path := writeConfig(t, t.TempDir(), "workspace: [unclosed\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
}

func TestProject_AppliesDefaults(t *testing.T) {
	cfg := &Config{}
	p := cfg.Project()
	assert.Equal(t, intconfig.DefaultCacheDir, p.CacheDir)
	assert.Equal(t, intconfig.DefaultScanWorkers, p.Scan.Workers)
}

func TestGetLogger_FallsBackToDiscard(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
}
