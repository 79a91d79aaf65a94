package graph

import (
	"sort"

	"github.com/archlens-labs/archlens/pkg/core"
)

// detectCycles finds dependency cycles using Tarjan's strongly-connected-
// components algorithm. The DFS uses an explicit frame stack so stack depth
// is bounded independent of graph size.
//
// A component is a cycle if it has at least two nodes, or exactly one node
// with a self-edge. Singleton components without a self-edge are suppressed.
func detectCycles(g *core.ProjectGraph) []core.Cycle {
	adjacency := make(map[string][]string, len(g.Nodes))
	selfEdge := make(map[string]bool)
	for _, n := range g.Nodes {
		adjacency[n.ID] = nil
	}
	for _, e := range g.Edges {
		adjacency[e.FromID] = append(adjacency[e.FromID], e.ToID)
		if e.FromID == e.ToID {
			selfEdge[e.FromID] = true
		}
	}
	// Edges are already sorted, so each adjacency list is sorted too; the
	// DFS order and therefore the component pop order is deterministic.

	t := &tarjan{
		adjacency: adjacency,
		index:     make(map[string]int, len(g.Nodes)),
		lowlink:   make(map[string]int, len(g.Nodes)),
		onStack:   make(map[string]bool, len(g.Nodes)),
	}

	for _, n := range g.Nodes {
		if _, visited := t.index[n.ID]; !visited {
			t.strongConnect(n.ID)
		}
	}

	var cycles []core.Cycle
	for _, scc := range t.sccs {
		if len(scc) < 2 && !selfEdge[scc[0]] {
			continue
		}
		sort.Strings(scc)
		cycles = append(cycles, core.Cycle{Members: scc})
	}
	sort.Slice(cycles, func(i, j int) bool {
		if cycles[i].Members[0] != cycles[j].Members[0] {
			return cycles[i].Members[0] < cycles[j].Members[0]
		}
		return len(cycles[i].Members) < len(cycles[j].Members)
	})
	return cycles
}

type tarjan struct {
	adjacency map[string][]string
	counter   int
	index     map[string]int
	lowlink   map[string]int
	onStack   map[string]bool
	stack     []string
	sccs      [][]string
}

// frame is one suspended DFS visit: the node and the index of the next
// neighbor to consider.
type frame struct {
	node string
	next int
}

// strongConnect runs the DFS from root without recursion: a work stack of
// frames replaces the call stack, resuming each node at its saved neighbor
// position after a child completes.
func (t *tarjan) strongConnect(root string) {
	work := []frame{{node: root}}
	t.visit(root)

	for len(work) > 0 {
		f := &work[len(work)-1]
		v := f.node

		advanced := false
		neighbors := t.adjacency[v]
		for f.next < len(neighbors) {
			w := neighbors[f.next]
			f.next++

			if _, visited := t.index[w]; !visited {
				// Descend: push a frame for w and resume v later.
				t.visit(w)
				work = append(work, frame{node: w})
				advanced = true
				break
			}
			if t.onStack[w] {
				if t.index[w] < t.lowlink[v] {
					t.lowlink[v] = t.index[w]
				}
			}
		}
		if advanced {
			continue
		}

		// All neighbors done: pop v, fold its lowlink into the parent.
		work = work[:len(work)-1]
		if len(work) > 0 {
			parent := work[len(work)-1].node
			if t.lowlink[v] < t.lowlink[parent] {
				t.lowlink[parent] = t.lowlink[v]
			}
		}

		// v is a component root: pop the node stack down to v.
		if t.lowlink[v] == t.index[v] {
			var scc []string
			for {
				w := t.stack[len(t.stack)-1]
				t.stack = t.stack[:len(t.stack)-1]
				t.onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			t.sccs = append(t.sccs, scc)
		}
	}
}

// visit assigns the depth index and pushes the node on the component stack.
func (t *tarjan) visit(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true
}
