// Package cache implements the content-addressable store backing incremental
// document analysis and drift baselining.
//
// Entries are keyed by a composite of analysis version, unit id, content
// path, and content hash; the physical location is derived from a hash of
// the key's canonical string, so identical keys always resolve to the same
// file and distinct keys never share one. Lookups for distinct keys are safe
// to run concurrently; two writers for the same key write identical bytes,
// so last-writer-wins needs no locking.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Key identifies one cached analysis result. Equality is structural: two
// keys are equal iff all four components match.
type Key struct {
	Version     string `json:"version"`
	UnitID      string `json:"unitId"`
	Path        string `json:"path"`
	ContentHash string `json:"contentHash"`
}

// Canonical returns the key's canonical string form, the basis of its
// storage location.
func (k Key) Canonical() string {
	return k.Version + "|" + k.UnitID + "|" + k.Path + "|" + k.ContentHash
}

// Entry is one persisted cache record.
type Entry struct {
	Key       Key       `json:"key"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is the outcome of a cache probe.
type Status int

const (
	// Miss means no structurally equal key was present; a fresh entry has
	// been stored.
	Miss Status = iota
	// Hit means a structurally equal key was already present.
	Hit
)

// String returns "hit" or "miss".
func (s Status) String() string {
	if s == Hit {
		return "hit"
	}
	return "miss"
}

// Store is a directory-backed content-addressable cache.
type Store struct {
	dir string
}

// NewStore creates the cache directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// entryPath derives the storage location for a key.
func (s *Store) entryPath(k Key) string {
	sum := sha256.Sum256([]byte(k.Canonical()))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

// TryGet looks up an entry by key. Unreadable or corrupt entry files are
// treated as absent, never as errors.
func (s *Store) TryGet(k Key) (*Entry, bool) {
	data, err := os.ReadFile(s.entryPath(k))
	if err != nil {
		return nil, false
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.Key != k {
		// Same storage location but a different key: hash collision or a
		// stale format. Treat as absent.
		return nil, false
	}
	return &e, true
}

// Store persists an entry at its key-derived location, replacing any
// previous file. The write goes through a temp file plus rename so
// concurrent readers never observe a partial entry.
func (s *Store) Store(e Entry) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	target := s.entryPath(e.Key)
	tmp, err := os.CreateTemp(s.dir, ".entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// GetStatus probes the cache for a key. A hit leaves the store untouched; a
// miss immediately inserts a fresh entry, making the cache double as a
// write-once dedup ledger: the n-th probe for an unchanged key within a run
// is a Hit, and the first probe after a content change is always a Miss.
func (s *Store) GetStatus(k Key) (Status, error) {
	if _, ok := s.TryGet(k); ok {
		return Hit, nil
	}
	if err := s.Store(Entry{Key: k, Timestamp: time.Now().UTC()}); err != nil {
		return Miss, err
	}
	return Miss, nil
}

// isEntryFile reports whether a directory entry is a cache entry file:
// a 64-hex-digit name with a .json extension. The drift snapshot and other
// files sharing the directory are excluded.
func isEntryFile(name string) bool {
	const hexLen = sha256.Size * 2
	if len(name) != hexLen+len(".json") || filepath.Ext(name) != ".json" {
		return false
	}
	_, err := hex.DecodeString(name[:hexLen])
	return err == nil
}

// Stats reports the number of entry files and their total size in bytes.
func (s *Store) Stats() (count int, bytes int64, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0, fmt.Errorf("read cache directory: %w", err)
	}
	for _, de := range entries {
		if de.IsDir() || !isEntryFile(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}

// Clear removes every entry file from the cache directory. Non-entry files
// (the drift snapshot among them) are left alone.
func (s *Store) Clear() (removed int, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache directory: %w", err)
	}
	for _, de := range entries {
		if de.IsDir() || !isEntryFile(de.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, de.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", de.Name(), err)
		}
		removed++
	}
	return removed, nil
}
