// Package config provides shared project configuration types for archlens.
// This package is decoupled from CLI concerns so any tool embedding the
// analysis pipeline can load project configuration the same way.
package config

import (
	"github.com/archlens-labs/archlens/internal/classify"
	"github.com/archlens-labs/archlens/pkg/core"
)

// ClassifyRule maps a glob-style unit-name pattern to a layer.
type ClassifyRule struct {
	Pattern string `koanf:"pattern"`
	Layer   string `koanf:"layer"`
}

// LayerRuleConfig overrides the allowed outgoing dependencies for one layer.
type LayerRuleConfig struct {
	From  string   `koanf:"from"`
	Allow []string `koanf:"allow"`
}

// ScanConfig holds incremental-scan settings.
type ScanConfig struct {
	// Workers bounds document-hashing parallelism. Zero means the default.
	Workers int `koanf:"workers"`
}

// ProjectConfig holds the full per-project configuration.
type ProjectConfig struct {
	// Workspace is the path to the workspace manifest, relative to the
	// project root unless absolute. Empty means discover it in the root.
	Workspace string `koanf:"workspace"`

	// CacheDir is where the analysis cache and drift baseline live.
	CacheDir string `koanf:"cache_dir"`

	// CaseInsensitivePaths folds path casing during identity resolution,
	// matching Windows-style filesystems.
	CaseInsensitivePaths bool `koanf:"case_insensitive_paths"`

	Scan     ScanConfig        `koanf:"scan"`
	Classify []ClassifyRule    `koanf:"classify"`
	Rules    []LayerRuleConfig `koanf:"rules"`
}

// ClassifyRules converts the configured classification rules to the
// classifier's input form. Unrecognized layer names map to Unknown and are
// kept, so rule ordering stays stable.
func (c *ProjectConfig) ClassifyRules() []classify.UserRule {
	out := make([]classify.UserRule, 0, len(c.Classify))
	for _, r := range c.Classify {
		layer, _ := core.ParseLayer(r.Layer)
		out = append(out, classify.UserRule{Pattern: r.Pattern, Layer: layer})
	}
	return out
}

// LayerRules converts the configured rule overrides to the engine's input
// form. Unrecognized layer names map to Unknown.
func (c *ProjectConfig) LayerRules() []core.LayerRule {
	out := make([]core.LayerRule, 0, len(c.Rules))
	for _, r := range c.Rules {
		from, _ := core.ParseLayer(r.From)
		rule := core.LayerRule{FromLayer: from}
		for _, a := range r.Allow {
			layer, _ := core.ParseLayer(a)
			rule.Allowed = append(rule.Allowed, layer)
		}
		out = append(out, rule)
	}
	return out
}
