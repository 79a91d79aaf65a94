// Package graph builds the project dependency graph and detects cycles.
//
// The graph is a deterministic value: nodes are sorted by (path, name, id),
// edges by (fromId, toId), and cycle membership by node id, so two runs over
// unchanged input serialize byte-identically.
package graph

import (
	"sort"

	"github.com/archlens-labs/archlens/internal/classify"
	"github.com/archlens-labs/archlens/internal/identity"
	"github.com/archlens-labs/archlens/pkg/core"
)

// Builder constructs ProjectGraphs from provider build units.
type Builder struct {
	ids        *identity.Resolver
	classifier *classify.Classifier
}

// NewBuilder creates a Builder using the given identity resolver and
// classifier.
func NewBuilder(ids *identity.Resolver, classifier *classify.Classifier) *Builder {
	return &Builder{ids: ids, classifier: classifier}
}

// Build derives facts for every unit, constructs the deduplicated edge set,
// and runs cycle detection. References to units absent from the node set are
// dropped rather than reported.
func (b *Builder) Build(units []core.BuildUnit) (*core.ProjectGraph, []core.BuildUnitFacts) {
	facts := make([]core.BuildUnitFacts, 0, len(units))
	idByName := make(map[string]string, len(units))

	for _, u := range units {
		id := b.ids.Resolve(u.Name, u.Path)
		cls := b.classifier.Classify(u.Name, id.Path, u.PackageRefs, u.IsTest)

		facts = append(facts, core.BuildUnitFacts{
			ID:           id.ID,
			Name:         u.Name,
			Path:         id.Path,
			Layer:        cls.Layer,
			LayerReason:  cls.Reason,
			MatchedRule:  cls.MatchedRule,
			IsTest:       cls.IsTest,
			IsTestReason: cls.IsTestReason,
		})
		idByName[u.Name] = id.ID
	}

	nodes := make([]core.ProjectNode, 0, len(facts))
	for _, f := range facts {
		nodes = append(nodes, core.ProjectNode{
			ID:    f.ID,
			Name:  f.Name,
			Path:  f.Path,
			Layer: f.Layer,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Path != nodes[j].Path {
			return nodes[i].Path < nodes[j].Path
		}
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})

	// Deduplicated edge set; dangling references are dropped.
	seen := make(map[core.ProjectEdge]struct{})
	var edges []core.ProjectEdge
	for _, u := range units {
		fromID := idByName[u.Name]
		for _, ref := range u.References {
			toID, ok := idByName[ref]
			if !ok {
				continue
			}
			e := core.ProjectEdge{FromID: fromID, ToID: toID}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].FromID != edges[j].FromID {
			return edges[i].FromID < edges[j].FromID
		}
		return edges[i].ToID < edges[j].ToID
	})

	g := &core.ProjectGraph{Nodes: nodes, Edges: edges}
	g.Cycles = detectCycles(g)

	sort.Slice(facts, func(i, j int) bool {
		if facts[i].Path != facts[j].Path {
			return facts[i].Path < facts[j].Path
		}
		if facts[i].Name != facts[j].Name {
			return facts[i].Name < facts[j].Name
		}
		return facts[i].ID < facts[j].ID
	})

	return g, facts
}
