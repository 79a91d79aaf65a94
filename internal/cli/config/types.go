// Package config loads CLI configuration from file, environment, and flags.
package config

import (
	intconfig "github.com/archlens-labs/archlens/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	// Workspace is the path to the workspace manifest. Empty means discover
	// it in the project root.
	Workspace string `koanf:"workspace"`

	// CacheDir is where the analysis cache and drift baseline live.
	CacheDir string `koanf:"cache_dir"`

	// CaseInsensitivePaths folds path casing during identity resolution.
	CaseInsensitivePaths bool `koanf:"case_insensitive_paths"`

	Scan     intconfig.ScanConfig        `koanf:"scan"`
	Classify []intconfig.ClassifyRule    `koanf:"classify"`
	Rules    []intconfig.LayerRuleConfig `koanf:"rules"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// ProjectRoot is the inferred project root directory. Not configurable
	// through the config file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Project converts the CLI config to the engine's project configuration.
func (c *Config) Project() *intconfig.ProjectConfig {
	p := &intconfig.ProjectConfig{
		Workspace:            c.Workspace,
		CacheDir:             c.CacheDir,
		CaseInsensitivePaths: c.CaseInsensitivePaths,
		Scan:                 c.Scan,
		Classify:             c.Classify,
		Rules:                c.Rules,
	}
	intconfig.ApplyDefaults(p)
	return p
}
