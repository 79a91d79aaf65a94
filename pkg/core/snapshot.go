package core

// SnapshotNode is one node in the persisted drift baseline.
// Field names match the on-disk snapshot format and must not change
// without bumping the analysis version.
type SnapshotNode struct {
	ID    string `json:"Id"`
	Name  string `json:"Name"`
	Layer string `json:"Layer"`
	Path  string `json:"Path"`
}

// SnapshotEdge is one denormalized edge in the persisted drift baseline.
type SnapshotEdge struct {
	FromID    string `json:"FromId"`
	FromName  string `json:"FromName"`
	FromLayer string `json:"FromLayer"`
	ToID      string `json:"ToId"`
	ToName    string `json:"ToName"`
	ToLayer   string `json:"ToLayer"`
}

// GraphSnapshot is the serialized form of a ProjectGraph used as the drift
// baseline. Both lists are in the deterministic sort order of the graph.
type GraphSnapshot struct {
	Nodes []SnapshotNode `json:"Nodes"`
	Edges []SnapshotEdge `json:"Edges"`
}

// DriftDependency describes one added or removed edge in a drift report.
type DriftDependency struct {
	FromName string `json:"fromName"`
	ToName   string `json:"toName"`
	FromID   string `json:"fromId"`
	ToID     string `json:"toId"`
}

// DriftProject describes one added or removed unit in a drift report.
type DriftProject struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// DriftReport is the structural difference between the current graph and the
// previously persisted baseline.
type DriftReport struct {
	BaselineAvailable   bool              `json:"baselineAvailable"`
	AddedProjects       []DriftProject    `json:"addedProjects"`
	RemovedProjects     []DriftProject    `json:"removedProjects"`
	AddedDependencies   []DriftDependency `json:"addedDependencies"`
	RemovedDependencies []DriftDependency `json:"removedDependencies"`
}

// HasDrift reports whether any structural change was detected.
func (d *DriftReport) HasDrift() bool {
	return len(d.AddedProjects) > 0 || len(d.RemovedProjects) > 0 ||
		len(d.AddedDependencies) > 0 || len(d.RemovedDependencies) > 0
}
