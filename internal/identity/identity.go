// Package identity derives stable, content-independent identifiers for build
// units from their normalized paths. Two invocations with the same raw path
// and root in the same platform mode always yield the same ID.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver normalizes unit paths and hashes them into stable IDs.
// Lookups are memoized per instance; a Resolver is safe for concurrent use.
type Resolver struct {
	root            string
	caseInsensitive bool

	mu   sync.RWMutex
	memo map[string]Identity
}

// Identity is the derived identity for one build unit.
type Identity struct {
	// ID is the sha256 hex digest of the normalization key.
	ID string

	// Path is the normalized, separator-unified, root-relative path.
	// Empty when the unit had no path and the name was used as the key.
	Path string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCaseInsensitive lower-cases normalization keys, for platforms whose
// filesystems are case-insensitive.
func WithCaseInsensitive() Option {
	return func(r *Resolver) { r.caseInsensitive = true }
}

// NewResolver creates a Resolver anchored at the given repository root.
func NewResolver(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root: filepath.Clean(root),
		memo: make(map[string]Identity),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve derives the identity for a unit. A unit with no path falls back to
// its lower-cased name as the normalization key; this never fails.
func (r *Resolver) Resolve(name, rawPath string) Identity {
	memoKey := rawPath
	if rawPath == "" {
		memoKey = "\x00name:" + name
	}

	r.mu.RLock()
	id, ok := r.memo[memoKey]
	r.mu.RUnlock()
	if ok {
		return id
	}

	id = r.derive(name, rawPath)

	r.mu.Lock()
	r.memo[memoKey] = id
	r.mu.Unlock()
	return id
}

func (r *Resolver) derive(name, rawPath string) Identity {
	if rawPath == "" {
		key := strings.ToLower(name)
		return Identity{ID: hash(key)}
	}

	normalized := r.Normalize(rawPath)
	key := normalized
	if r.caseInsensitive {
		key = strings.ToLower(key)
	}
	return Identity{ID: hash(key), Path: normalized}
}

// Normalize returns the separator-unified, root-relative form of a path.
// Paths outside the root normalize to their absolute form.
func (r *Resolver) Normalize(rawPath string) string {
	abs := rawPath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func hash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
