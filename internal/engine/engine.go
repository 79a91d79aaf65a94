// Package engine orchestrates one full analysis run: it loads the project
// model, builds the dependency graph, evaluates layer rules, detects drift
// against the persisted baseline, and runs the incremental document scan.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/archlens-labs/archlens/internal/cache"
	"github.com/archlens-labs/archlens/internal/classify"
	"github.com/archlens-labs/archlens/internal/config"
	"github.com/archlens-labs/archlens/internal/drift"
	"github.com/archlens-labs/archlens/internal/graph"
	"github.com/archlens-labs/archlens/internal/identity"
	"github.com/archlens-labs/archlens/internal/provider"
	"github.com/archlens-labs/archlens/internal/rules"
	"github.com/archlens-labs/archlens/internal/scan"
	"github.com/archlens-labs/archlens/pkg/core"
)

// AnalysisVersion tags cache entries and reports. Bumping it invalidates
// every prior cache entry without touching the files on disk.
const AnalysisVersion = "1.0"

// Engine runs the analysis pipeline.
type Engine struct {
	provider provider.Provider
	cfg      *config.ProjectConfig
	rules    *rules.Engine
	logger   *slog.Logger
}

// Options holds engine configuration.
type Options struct {
	// Provider supplies the project model.
	Provider provider.Provider
	// Config is the project configuration. Nil means all defaults.
	Config *config.ProjectConfig
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// New creates an engine.
func New(opts Options) (*Engine, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("engine requires a project model provider")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.ProjectConfig{}
	}
	config.ApplyDefaults(cfg)

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Engine{
		provider: opts.Provider,
		cfg:      cfg,
		rules:    rules.NewEngine(cfg.LayerRules()),
		logger:   logger,
	}, nil
}

// Rules returns the effective layer-adjacency rules, sorted by source layer.
func (e *Engine) Rules() []core.LayerRule {
	return e.rules.Rules()
}

// CacheDir resolves the cache directory against the workspace root.
func (e *Engine) CacheDir(root string) string {
	if filepath.IsAbs(e.cfg.CacheDir) {
		return e.cfg.CacheDir
	}
	return filepath.Join(root, e.cfg.CacheDir)
}

// Run executes one full analysis and returns the report. Identical inputs
// produce byte-identical reports up to the run ID.
func (e *Engine) Run(ctx context.Context) (*core.Report, error) {
	ws, err := e.provider.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load project model: %w", err)
	}
	e.logger.Debug("workspace loaded", "path", ws.Path, "units", len(ws.Units))

	var idOpts []identity.Option
	if e.cfg.CaseInsensitivePaths {
		idOpts = append(idOpts, identity.WithCaseInsensitive())
	}
	resolver := identity.NewResolver(ws.Root, idOpts...)
	classifier := classify.NewClassifier(e.cfg.ClassifyRules())

	g, facts := graph.NewBuilder(resolver, classifier).Build(ws.Units)
	e.logger.Debug("graph built",
		"nodes", len(g.Nodes), "edges", len(g.Edges), "cycles", len(g.Cycles))

	violations := e.rules.Evaluate(g)
	if len(violations) > 0 {
		e.logger.Info("layer rule violations found", "count", len(violations))
	}

	cacheDir := e.CacheDir(ws.Root)
	driftReport, err := drift.NewDetector(cacheDir).Detect(drift.Snapshot(g))
	if err != nil {
		return nil, fmt.Errorf("detect drift: %w", err)
	}

	summary, err := e.scanDocuments(ctx, cacheDir, ws.Units, facts)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	return &core.Report{
		WorkspacePath:   ws.Path,
		AnalysisVersion: AnalysisVersion,
		RunID:           uuid.NewString(),
		Units:           facts,
		Graph:           g,
		Rules:           e.rules.Rules(),
		Violations:      violations,
		Drift:           driftReport,
		Scan:            summary,
	}, nil
}

// scanDocuments runs the incremental document scan for every unit that
// declares documents. Units without documents contribute nothing.
func (e *Engine) scanDocuments(ctx context.Context, cacheDir string, units []core.BuildUnit, facts []core.BuildUnitFacts) (*core.ScanSummary, error) {
	docsByName := make(map[string][]string, len(units))
	for _, u := range units {
		if len(u.Documents) > 0 {
			docsByName[u.Name] = u.Documents
		}
	}

	var targets []scan.Target
	for _, f := range facts {
		if docs, ok := docsByName[f.Name]; ok {
			targets = append(targets, scan.Target{UnitID: f.ID, Documents: docs})
		}
	}
	if len(targets) == 0 {
		return &core.ScanSummary{}, nil
	}

	store, err := cache.NewStore(cacheDir)
	if err != nil {
		return nil, err
	}
	scanner := scan.NewScanner(store, AnalysisVersion, e.cfg.Scan.Workers, e.logger)
	return scanner.Run(ctx, targets)
}
