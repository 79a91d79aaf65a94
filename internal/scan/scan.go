// Package scan runs the incremental per-document analysis pass: every
// document belonging to a build unit is content-hashed and probed against
// the content-addressable cache, yielding a hit/miss summary that tells the
// caller which documents changed since the last run.
package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/archlens-labs/archlens/internal/cache"
	"github.com/archlens-labs/archlens/pkg/core"
)

// Target is one unit's set of documents to scan.
type Target struct {
	UnitID    string
	Documents []string
}

// Scanner hashes documents in parallel and feeds the cache. The parallelism
// bound is supplied by the caller; the cache is safe for concurrent probes
// of distinct keys.
type Scanner struct {
	store   *cache.Store
	version string
	workers int
	logger  *slog.Logger
}

// NewScanner creates a Scanner. A workers value below one falls back to
// serial scanning.
func NewScanner(store *cache.Store, version string, workers int, logger *slog.Logger) *Scanner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{store: store, version: version, workers: workers, logger: logger}
}

// Run scans every document of every target and returns the aggregate
// summary. Unreadable documents count as errors but never fail the scan.
func (s *Scanner) Run(ctx context.Context, targets []Target) (*core.ScanSummary, error) {
	summary := &core.ScanSummary{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, t := range targets {
		for _, doc := range t.Documents {
			unitID, doc := t.UnitID, doc
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				status, err := s.scanDocument(unitID, doc)

				mu.Lock()
				defer mu.Unlock()
				summary.Documents++
				switch {
				case err != nil:
					summary.Errors++
					s.logger.Debug("document scan failed", "path", doc, "error", err)
				case status == cache.Hit:
					summary.Hits++
				default:
					summary.Misses++
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// scanDocument hashes one document and probes the cache.
func (s *Scanner) scanDocument(unitID, doc string) (cache.Status, error) {
	abs, err := filepath.Abs(doc)
	if err != nil {
		abs = filepath.Clean(doc)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return cache.Miss, err
	}
	sum := sha256.Sum256(data)

	key := cache.Key{
		Version:     s.version,
		UnitID:      unitID,
		Path:        filepath.ToSlash(abs),
		ContentHash: hex.EncodeToString(sum[:]),
	}
	return s.store.GetStatus(key)
}
