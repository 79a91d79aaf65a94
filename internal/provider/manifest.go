package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/archlens-labs/archlens/pkg/core"
)

// ManifestFileName is the default workspace manifest name.
const ManifestFileName = "archlens-workspace.yaml"

// ManifestFileNameAlt is the alternate manifest name.
const ManifestFileNameAlt = "archlens-workspace.yml"

// manifest mirrors the YAML workspace file.
type manifest struct {
	Root  string         `koanf:"root"`
	Units []manifestUnit `koanf:"units"`
}

type manifestUnit struct {
	Name       string   `koanf:"name"`
	Path       string   `koanf:"path"`
	References []string `koanf:"references"`
	Packages   []string `koanf:"packages"`
	Test       bool     `koanf:"test"`
	Documents  []string `koanf:"documents"`
}

// ManifestProvider loads a workspace from a YAML manifest file.
type ManifestProvider struct {
	path string
}

// NewManifestProvider creates a provider for the given manifest path.
func NewManifestProvider(path string) *ManifestProvider {
	return &ManifestProvider{path: path}
}

// FindManifest locates a workspace manifest in the given directory.
// Returns empty string if not found.
func FindManifest(dir string) string {
	for _, name := range []string{ManifestFileName, ManifestFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load implements Provider.
func (p *ManifestProvider) Load(_ context.Context) (*Workspace, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(p.path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read workspace manifest %s: %w", p.path, err)
	}

	var m manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, fmt.Errorf("decode workspace manifest %s: %w", p.path, err)
	}

	absManifest, err := filepath.Abs(p.path)
	if err != nil {
		absManifest = filepath.Clean(p.path)
	}
	manifestDir := filepath.Dir(absManifest)

	root := m.Root
	if root == "" {
		root = manifestDir
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(manifestDir, root)
	}

	ws := &Workspace{Path: absManifest, Root: root}
	for i, mu := range m.Units {
		if mu.Name == "" {
			return nil, fmt.Errorf("workspace manifest %s: unit %d has no name", p.path, i)
		}

		unitPath := mu.Path
		if unitPath != "" && !filepath.IsAbs(unitPath) {
			unitPath = filepath.Join(root, unitPath)
		}

		ws.Units = append(ws.Units, core.BuildUnit{
			Name:        mu.Name,
			Path:        unitPath,
			References:  mu.References,
			PackageRefs: mu.Packages,
			IsTest:      mu.Test,
			Documents:   expandDocuments(root, unitPath, mu.Documents),
		})
	}
	return ws, nil
}

// expandDocuments resolves document entries relative to the unit directory
// (falling back to the workspace root) and expands glob patterns. A pattern
// matching nothing, or a malformed pattern, contributes no documents.
func expandDocuments(root, unitPath string, entries []string) []string {
	base := unitPath
	if base == "" {
		base = root
	}

	var docs []string
	for _, entry := range entries {
		path := entry
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}

		if !strings.ContainsAny(entry, "*?[") {
			docs = append(docs, path)
			continue
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			continue
		}
		docs = append(docs, matches...)
	}
	return docs
}
