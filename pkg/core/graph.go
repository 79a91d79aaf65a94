package core

// ProjectNode is one build unit in the dependency graph.
type ProjectNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	Layer Layer  `json:"layer"`
}

// ProjectEdge is one distinct (from, to) unit-reference pair.
type ProjectEdge struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
}

// Cycle is one strongly connected component reported as a dependency cycle.
// Members are sorted node IDs.
type Cycle struct {
	Members []string `json:"members"`
}

// ProjectGraph is the immutable dependency graph computed per run.
// Nodes, Edges, and Cycles are totally ordered by fixed comparators so two
// runs over unchanged input serialize byte-identically.
type ProjectGraph struct {
	Nodes  []ProjectNode `json:"nodes"`
	Edges  []ProjectEdge `json:"edges"`
	Cycles []Cycle       `json:"cycles"`
}

// Node returns the node with the given ID, if present.
func (g *ProjectGraph) Node(id string) (ProjectNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ProjectNode{}, false
}

// FanOut counts outgoing edges for the given node ID.
func (g *ProjectGraph) FanOut(id string) int {
	count := 0
	for _, e := range g.Edges {
		if e.FromID == id {
			count++
		}
	}
	return count
}

// FanIn counts incoming edges for the given node ID.
func (g *ProjectGraph) FanIn(id string) int {
	count := 0
	for _, e := range g.Edges {
		if e.ToID == id {
			count++
		}
	}
	return count
}
