package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/cli/config"
	"github.com/archlens-labs/archlens/internal/cli/output"
	intconfig "github.com/archlens-labs/archlens/internal/config"
	"github.com/archlens-labs/archlens/internal/engine"
	"github.com/archlens-labs/archlens/internal/provider"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: newRenderer(cmd, cfg),
	}, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't need a workspace.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: newRenderer(cmd, cfg),
	}
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	mode := output.Mode(cfg.OutputFormat)
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return &config.Config{
		Workspace:    os.Getenv("ARCHLENS_WORKSPACE"),
		CacheDir:     getEnvOrDefault("ARCHLENS_CACHE_DIR", intconfig.DefaultCacheDir),
		Verbose:      os.Getenv("ARCHLENS_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("ARCHLENS_OUTPUT", config.DefaultOutput),
		ProjectRoot:  cwd,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	manifest := cfg.Workspace
	if manifest == "" {
		manifest = provider.FindManifest(cfg.ProjectRoot)
	}
	if manifest == "" {
		return nil, fmt.Errorf("no workspace manifest found: expected %s in %s, or pass --workspace",
			provider.ManifestFileName, cfg.ProjectRoot)
	}

	return engine.New(engine.Options{
		Provider: provider.NewManifestProvider(manifest),
		Config:   cfg.Project(),
		Logger:   logger,
	})
}
