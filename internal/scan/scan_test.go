package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archlens-labs/archlens/internal/cache"
	"github.com/archlens-labs/archlens/internal/testutil"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestScanner(t *testing.T, workers int) (*Scanner, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := cache.NewStore(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	return NewScanner(store, "1.0", workers, testutil.NewTestLogger(t)), dir
}

func TestRun_ColdScanMissesEverything(t *testing.T) {
	s, dir := newTestScanner(t, 4)

	targets := []Target{{
		UnitID: "unit-a",
		Documents: []string{
			writeDoc(t, dir, "one.cs", "class One {}"),
			writeDoc(t, dir, "two.cs", "class Two {}"),
		},
	}}

	summary, err := s.Run(context.Background(), targets)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Documents != 2 || summary.Misses != 2 || summary.Hits != 0 {
		t.Errorf("cold scan: %+v, want 2 documents, 2 misses", summary)
	}
}

func TestRun_SecondScanHits(t *testing.T) {
	s, dir := newTestScanner(t, 4)

	targets := []Target{{
		UnitID:    "unit-a",
		Documents: []string{writeDoc(t, dir, "one.cs", "class One {}")},
	}}

	if _, err := s.Run(context.Background(), targets); err != nil {
		t.Fatal(err)
	}
	summary, err := s.Run(context.Background(), targets)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Hits != 1 || summary.Misses != 0 {
		t.Errorf("unchanged document should hit: %+v", summary)
	}
}

func TestRun_ChangedContentMisses(t *testing.T) {
	s, dir := newTestScanner(t, 1)

	doc := writeDoc(t, dir, "one.cs", "class One {}")
	targets := []Target{{UnitID: "unit-a", Documents: []string{doc}}}

	if _, err := s.Run(context.Background(), targets); err != nil {
		t.Fatal(err)
	}

	writeDoc(t, dir, "one.cs", "class One { int X; }")
	summary, err := s.Run(context.Background(), targets)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Misses != 1 {
		t.Errorf("changed document should miss: %+v", summary)
	}
}

func TestRun_UnreadableDocumentCountsAsError(t *testing.T) {
	s, dir := newTestScanner(t, 2)

	targets := []Target{{
		UnitID: "unit-a",
		Documents: []string{
			filepath.Join(dir, "missing.cs"),
			writeDoc(t, dir, "real.cs", "class Real {}"),
		},
	}}

	summary, err := s.Run(context.Background(), targets)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Errors != 1 {
		t.Errorf("missing document should count as error: %+v", summary)
	}
	if summary.Misses != 1 {
		t.Errorf("readable document should still scan: %+v", summary)
	}
}

func TestRun_ManyDocumentsBoundedWorkers(t *testing.T) {
	s, dir := newTestScanner(t, 3)

	var docs []string
	for i := 0; i < 40; i++ {
		docs = append(docs, writeDoc(t, dir, "doc"+string(rune('a'+i%26))+string(rune('0'+i%10))+".cs", "content"))
	}
	targets := []Target{{UnitID: "unit-a", Documents: docs}}

	summary, err := s.Run(context.Background(), targets)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Documents != 40 {
		t.Errorf("expected 40 documents scanned, got %d", summary.Documents)
	}
}
