// Package rules evaluates dependency edges against a layer-adjacency policy.
//
// The effective rule set merges built-in defaults with user configuration:
// a user rule for a given source layer fully replaces the default for that
// layer. Evaluation is pure; it never mutates the graph and has no side
// effects.
package rules

import (
	"sort"
	"strings"

	"github.com/archlens-labs/archlens/pkg/core"
)

// defaultRules is the built-in layer-adjacency table. Unknown deliberately
// allows everything: unclassified units are not enforced until the user
// supplies a classification rule (or overrides the Unknown rule itself).
func defaultRules() []core.LayerRule {
	all := core.KnownLayers()
	return []core.LayerRule{
		{FromLayer: core.LayerPresentation, Allowed: []core.Layer{core.LayerApplication, core.LayerPresentation}},
		{FromLayer: core.LayerApplication, Allowed: []core.Layer{core.LayerApplication, core.LayerDomain}},
		{FromLayer: core.LayerDomain, Allowed: []core.Layer{core.LayerDomain}},
		{FromLayer: core.LayerInfrastructure, Allowed: []core.Layer{core.LayerApplication, core.LayerDomain, core.LayerInfrastructure}},
		{FromLayer: core.LayerTests, Allowed: all},
		{FromLayer: core.LayerUnknown, Allowed: all},
	}
}

// Engine holds the effective merged rule set.
type Engine struct {
	byLayer map[core.Layer]core.LayerRule
}

// NewEngine merges user rules over the defaults. One rule survives per
// distinct source layer; when the user supplies several for the same layer,
// the later one wins.
func NewEngine(userRules []core.LayerRule) *Engine {
	byLayer := make(map[core.Layer]core.LayerRule)
	for _, r := range defaultRules() {
		byLayer[r.FromLayer] = normalize(r)
	}
	for _, r := range userRules {
		byLayer[r.FromLayer] = normalize(r)
	}
	return &Engine{byLayer: byLayer}
}

// normalize sorts the allowed set and drops duplicate entries.
func normalize(r core.LayerRule) core.LayerRule {
	seen := make(map[core.Layer]struct{}, len(r.Allowed))
	allowed := make([]core.Layer, 0, len(r.Allowed))
	for _, l := range r.Allowed {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		allowed = append(allowed, l)
	}
	sort.Slice(allowed, func(i, j int) bool { return allowed[i] < allowed[j] })
	return core.LayerRule{FromLayer: r.FromLayer, Allowed: allowed}
}

// Rules returns the effective rule set sorted by source layer.
func (e *Engine) Rules() []core.LayerRule {
	out := make([]core.LayerRule, 0, len(e.byLayer))
	for _, r := range e.byLayer {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FromLayer < out[j].FromLayer })
	return out
}

// Evaluate checks every edge against the rule for its source layer. Edges
// whose source layer has no rule are skipped: the policy has no opinion.
func (e *Engine) Evaluate(g *core.ProjectGraph) []core.RuleViolation {
	nodes := make(map[string]core.ProjectNode, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	var violations []core.RuleViolation
	for _, edge := range g.Edges {
		from, ok := nodes[edge.FromID]
		if !ok {
			continue
		}
		to, ok := nodes[edge.ToID]
		if !ok {
			continue
		}

		rule, ok := e.byLayer[from.Layer]
		if !ok {
			continue
		}
		if rule.Permits(to.Layer) {
			continue
		}

		v := core.RuleViolation{
			FromID:    from.ID,
			FromName:  from.Name,
			FromLayer: from.Layer,
			ToID:      to.ID,
			ToName:    to.Name,
			ToLayer:   to.Layer,
			Allowed:   rule.Allowed,
			Rule:      ruleText(rule),
		}
		if to.Layer == core.LayerUnknown {
			v.Guidance = "add a classification rule for '" + to.Name + "' so it can be assigned a layer"
		}
		violations = append(violations, v)
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].FromLayer != violations[j].FromLayer {
			return violations[i].FromLayer < violations[j].FromLayer
		}
		if violations[i].FromName != violations[j].FromName {
			return violations[i].FromName < violations[j].FromName
		}
		return violations[i].ToName < violations[j].ToName
	})
	return violations
}

// ruleText renders a rule for violation messages, e.g.
// "Presentation -> Application, Presentation".
func ruleText(r core.LayerRule) string {
	names := make([]string, len(r.Allowed))
	for i, l := range r.Allowed {
		names[i] = string(l)
	}
	return string(r.FromLayer) + " -> " + strings.Join(names, ", ")
}
