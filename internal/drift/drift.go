// Package drift persists graph snapshots and diffs the current graph
// against the previous run's baseline.
//
// The baseline is a single JSON file per cache directory with exactly one
// writer per process run. Two concurrent invocations against the same
// directory race last-writer-wins; the write itself goes through a rename so
// no reader ever sees a torn file.
package drift

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/archlens-labs/archlens/pkg/core"
)

// SnapshotFileName is the baseline file within the cache directory.
const SnapshotFileName = "architecture-snapshot.json"

// Snapshot serializes a graph into its persisted baseline form. Node and
// edge order carries over from the graph's deterministic sort.
func Snapshot(g *core.ProjectGraph) *core.GraphSnapshot {
	names := make(map[string]string, len(g.Nodes))
	layers := make(map[string]core.Layer, len(g.Nodes))

	snap := &core.GraphSnapshot{
		Nodes: make([]core.SnapshotNode, 0, len(g.Nodes)),
		Edges: make([]core.SnapshotEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		names[n.ID] = n.Name
		layers[n.ID] = n.Layer
		snap.Nodes = append(snap.Nodes, core.SnapshotNode{
			ID:    n.ID,
			Name:  n.Name,
			Layer: string(n.Layer),
			Path:  n.Path,
		})
	}
	for _, e := range g.Edges {
		snap.Edges = append(snap.Edges, core.SnapshotEdge{
			FromID:    e.FromID,
			FromName:  names[e.FromID],
			FromLayer: string(layers[e.FromID]),
			ToID:      e.ToID,
			ToName:    names[e.ToID],
			ToLayer:   string(layers[e.ToID]),
		})
	}
	return snap
}

// Detector loads, diffs, and persists baselines in one cache directory.
type Detector struct {
	dir string
}

// NewDetector returns a Detector for the given cache directory.
func NewDetector(cacheDir string) *Detector {
	return &Detector{dir: cacheDir}
}

// SnapshotPath returns the baseline file location.
func (d *Detector) SnapshotPath() string {
	return filepath.Join(d.dir, SnapshotFileName)
}

// Detect diffs the current snapshot against the persisted baseline and then
// overwrites the baseline with the current snapshot. A missing, unreadable,
// or corrupt baseline degrades to a cold start: the report says no baseline
// was available and all diff lists stay empty.
func (d *Detector) Detect(current *core.GraphSnapshot) (*core.DriftReport, error) {
	report := &core.DriftReport{
		AddedProjects:       []core.DriftProject{},
		RemovedProjects:     []core.DriftProject{},
		AddedDependencies:   []core.DriftDependency{},
		RemovedDependencies: []core.DriftDependency{},
	}

	baseline, ok := d.load()
	if ok {
		report.BaselineAvailable = true
		diffNodes(baseline, current, report)
		diffEdges(baseline, current, report)
	}

	if err := d.persist(current); err != nil {
		return nil, err
	}
	return report, nil
}

// load reads the previous baseline. Any failure reads as "no baseline".
func (d *Detector) load() (*core.GraphSnapshot, bool) {
	data, err := os.ReadFile(d.SnapshotPath())
	if err != nil {
		return nil, false
	}
	var snap core.GraphSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

// persist writes the snapshot via temp file plus rename.
func (d *Detector) persist(snap *core.GraphSnapshot) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.SnapshotPath()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

func diffNodes(baseline, current *core.GraphSnapshot, report *core.DriftReport) {
	prev := make(map[string]core.SnapshotNode, len(baseline.Nodes))
	for _, n := range baseline.Nodes {
		prev[n.ID] = n
	}
	curr := make(map[string]core.SnapshotNode, len(current.Nodes))
	for _, n := range current.Nodes {
		curr[n.ID] = n
	}

	for id, n := range curr {
		if _, ok := prev[id]; !ok {
			report.AddedProjects = append(report.AddedProjects, core.DriftProject{Name: n.Name, ID: n.ID})
		}
	}
	for id, n := range prev {
		if _, ok := curr[id]; !ok {
			report.RemovedProjects = append(report.RemovedProjects, core.DriftProject{Name: n.Name, ID: n.ID})
		}
	}

	sortProjects(report.AddedProjects)
	sortProjects(report.RemovedProjects)
}

func diffEdges(baseline, current *core.GraphSnapshot, report *core.DriftReport) {
	type pair struct{ from, to string }

	prev := make(map[pair]core.SnapshotEdge, len(baseline.Edges))
	for _, e := range baseline.Edges {
		prev[pair{e.FromID, e.ToID}] = e
	}
	curr := make(map[pair]core.SnapshotEdge, len(current.Edges))
	for _, e := range current.Edges {
		curr[pair{e.FromID, e.ToID}] = e
	}

	for p, e := range curr {
		if _, ok := prev[p]; !ok {
			report.AddedDependencies = append(report.AddedDependencies, dep(e))
		}
	}
	for p, e := range prev {
		if _, ok := curr[p]; !ok {
			report.RemovedDependencies = append(report.RemovedDependencies, dep(e))
		}
	}

	sortDeps(report.AddedDependencies)
	sortDeps(report.RemovedDependencies)
}

func dep(e core.SnapshotEdge) core.DriftDependency {
	return core.DriftDependency{
		FromName: e.FromName,
		ToName:   e.ToName,
		FromID:   e.FromID,
		ToID:     e.ToID,
	}
}

func sortProjects(list []core.DriftProject) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}

func sortDeps(list []core.DriftDependency) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].FromName != list[j].FromName {
			return list[i].FromName < list[j].FromName
		}
		return list[i].ToName < list[j].ToName
	})
}
