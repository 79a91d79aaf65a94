package drift

import (
	"os"
	"testing"

	"github.com/archlens-labs/archlens/pkg/core"
)

func graphAB() *core.ProjectGraph {
	return &core.ProjectGraph{
		Nodes: []core.ProjectNode{
			{ID: "id-a", Name: "A", Path: "src/A", Layer: core.LayerDomain},
			{ID: "id-b", Name: "B", Path: "src/B", Layer: core.LayerDomain},
		},
		Edges: []core.ProjectEdge{{FromID: "id-a", ToID: "id-b"}},
	}
}

func graphABC() *core.ProjectGraph {
	g := graphAB()
	g.Nodes = append(g.Nodes, core.ProjectNode{ID: "id-c", Name: "C", Path: "src/C", Layer: core.LayerDomain})
	g.Edges = append(g.Edges, core.ProjectEdge{FromID: "id-b", ToID: "id-c"})
	return g
}

func TestSnapshot_DenormalizesEdges(t *testing.T) {
	snap := Snapshot(graphAB())

	if len(snap.Nodes) != 2 || len(snap.Edges) != 1 {
		t.Fatalf("unexpected snapshot shape: %d nodes, %d edges", len(snap.Nodes), len(snap.Edges))
	}
	e := snap.Edges[0]
	if e.FromName != "A" || e.ToName != "B" {
		t.Errorf("edge names not denormalized: %+v", e)
	}
	if e.FromLayer != "Domain" || e.ToLayer != "Domain" {
		t.Errorf("edge layers not denormalized: %+v", e)
	}
}

func TestDetect_ColdStart(t *testing.T) {
	d := NewDetector(t.TempDir())

	report, err := d.Detect(Snapshot(graphAB()))
	if err != nil {
		t.Fatal(err)
	}

	if report.BaselineAvailable {
		t.Error("first run must report no baseline")
	}
	if report.HasDrift() {
		t.Error("cold start must report empty diff lists")
	}

	// The snapshot is still written.
	if _, err := os.Stat(d.SnapshotPath()); err != nil {
		t.Errorf("snapshot not persisted: %v", err)
	}
}

func TestDetect_AddedUnitAndDependency(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector(dir)

	if _, err := d.Detect(Snapshot(graphAB())); err != nil {
		t.Fatal(err)
	}

	report, err := d.Detect(Snapshot(graphABC()))
	if err != nil {
		t.Fatal(err)
	}

	if !report.BaselineAvailable {
		t.Fatal("second run must see the baseline")
	}
	if len(report.AddedProjects) != 1 || report.AddedProjects[0].Name != "C" {
		t.Errorf("AddedProjects = %+v, want [C]", report.AddedProjects)
	}
	if len(report.AddedDependencies) != 1 || report.AddedDependencies[0].FromName != "B" || report.AddedDependencies[0].ToName != "C" {
		t.Errorf("AddedDependencies = %+v, want [B->C]", report.AddedDependencies)
	}
	if len(report.RemovedProjects) != 0 || len(report.RemovedDependencies) != 0 {
		t.Errorf("unexpected removals: %+v / %+v", report.RemovedProjects, report.RemovedDependencies)
	}
}

func TestDetect_RemovedUnitAndDependency(t *testing.T) {
	d := NewDetector(t.TempDir())

	if _, err := d.Detect(Snapshot(graphABC())); err != nil {
		t.Fatal(err)
	}
	report, err := d.Detect(Snapshot(graphAB()))
	if err != nil {
		t.Fatal(err)
	}

	if len(report.RemovedProjects) != 1 || report.RemovedProjects[0].Name != "C" {
		t.Errorf("RemovedProjects = %+v, want [C]", report.RemovedProjects)
	}
	if len(report.RemovedDependencies) != 1 {
		t.Errorf("RemovedDependencies = %+v, want one entry", report.RemovedDependencies)
	}
}

func TestDetect_CorruptBaselineDegradesToColdStart(t *testing.T) {
	d := NewDetector(t.TempDir())

	if _, err := d.Detect(Snapshot(graphAB())); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(d.SnapshotPath(), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := d.Detect(Snapshot(graphABC()))
	if err != nil {
		t.Fatal(err)
	}
	if report.BaselineAvailable {
		t.Error("corrupt baseline must degrade to cold start, not error")
	}
}

func TestDetect_NoChange(t *testing.T) {
	d := NewDetector(t.TempDir())

	if _, err := d.Detect(Snapshot(graphAB())); err != nil {
		t.Fatal(err)
	}
	report, err := d.Detect(Snapshot(graphAB()))
	if err != nil {
		t.Fatal(err)
	}

	if !report.BaselineAvailable {
		t.Error("baseline should be present")
	}
	if report.HasDrift() {
		t.Errorf("identical graphs must report no drift: %+v", report)
	}
}
