package rules

import (
	"testing"

	"github.com/archlens-labs/archlens/pkg/core"
)

func twoNodeGraph(fromLayer, toLayer core.Layer) *core.ProjectGraph {
	return &core.ProjectGraph{
		Nodes: []core.ProjectNode{
			{ID: "id-from", Name: "From", Layer: fromLayer},
			{ID: "id-to", Name: "To", Layer: toLayer},
		},
		Edges: []core.ProjectEdge{{FromID: "id-from", ToID: "id-to"}},
	}
}

func TestEvaluate_PresentationToDomainViolates(t *testing.T) {
	e := NewEngine(nil)

	violations := e.Evaluate(twoNodeGraph(core.LayerPresentation, core.LayerDomain))

	if len(violations) != 1 {
		t.Fatalf("expected exactly one violation, got %d", len(violations))
	}
	v := violations[0]
	if v.ToLayer != core.LayerDomain {
		t.Errorf("ToLayer = %v, want Domain", v.ToLayer)
	}
	want := []core.Layer{core.LayerApplication, core.LayerPresentation}
	if len(v.Allowed) != len(want) || v.Allowed[0] != want[0] || v.Allowed[1] != want[1] {
		t.Errorf("Allowed = %v, want %v", v.Allowed, want)
	}
}

func TestEvaluate_AllowedEdgePasses(t *testing.T) {
	e := NewEngine(nil)

	violations := e.Evaluate(twoNodeGraph(core.LayerPresentation, core.LayerApplication))
	if len(violations) != 0 {
		t.Errorf("Presentation -> Application should be allowed, got %v", violations)
	}
}

func TestEvaluate_UnknownSourceIsPermissiveByDefault(t *testing.T) {
	e := NewEngine(nil)

	violations := e.Evaluate(twoNodeGraph(core.LayerUnknown, core.LayerDomain))
	if len(violations) != 0 {
		t.Errorf("default Unknown rule allows everything, got %v", violations)
	}
}

func TestEvaluate_UnknownTargetCarriesGuidance(t *testing.T) {
	e := NewEngine(nil)

	violations := e.Evaluate(twoNodeGraph(core.LayerDomain, core.LayerUnknown))
	if len(violations) != 1 {
		t.Fatalf("expected one violation, got %d", len(violations))
	}
	if violations[0].Guidance == "" {
		t.Error("violation into Unknown must carry classification guidance")
	}
}

func TestNewEngine_UserRuleReplacesDefault(t *testing.T) {
	e := NewEngine([]core.LayerRule{
		{FromLayer: core.LayerPresentation, Allowed: []core.Layer{core.LayerDomain}},
	})

	// The replacement drops the default allowance entirely.
	violations := e.Evaluate(twoNodeGraph(core.LayerPresentation, core.LayerApplication))
	if len(violations) != 1 {
		t.Fatalf("user rule should fully replace default, got %d violations", len(violations))
	}

	violations = e.Evaluate(twoNodeGraph(core.LayerPresentation, core.LayerDomain))
	if len(violations) != 0 {
		t.Errorf("user-allowed edge should pass, got %v", violations)
	}
}

func TestNewEngine_LaterUserRuleWins(t *testing.T) {
	e := NewEngine([]core.LayerRule{
		{FromLayer: core.LayerDomain, Allowed: []core.Layer{core.LayerInfrastructure}},
		{FromLayer: core.LayerDomain, Allowed: []core.Layer{core.LayerDomain}},
	})

	violations := e.Evaluate(twoNodeGraph(core.LayerDomain, core.LayerInfrastructure))
	if len(violations) != 1 {
		t.Errorf("later rule for the same layer must win, got %d violations", len(violations))
	}
}

func TestRules_SortedAndNormalized(t *testing.T) {
	e := NewEngine([]core.LayerRule{
		{FromLayer: core.LayerDomain, Allowed: []core.Layer{
			core.LayerTests, core.LayerDomain, core.LayerDomain, core.LayerApplication,
		}},
	})

	rules := e.Rules()
	for i := 1; i < len(rules); i++ {
		if rules[i-1].FromLayer >= rules[i].FromLayer {
			t.Errorf("rules not sorted by source layer: %v before %v", rules[i-1].FromLayer, rules[i].FromLayer)
		}
	}

	for _, r := range rules {
		if r.FromLayer != core.LayerDomain {
			continue
		}
		want := []core.Layer{core.LayerApplication, core.LayerDomain, core.LayerTests}
		if len(r.Allowed) != len(want) {
			t.Fatalf("Allowed = %v, want %v", r.Allowed, want)
		}
		for i := range want {
			if r.Allowed[i] != want[i] {
				t.Errorf("Allowed = %v, want %v", r.Allowed, want)
			}
		}
	}
}

func TestEvaluate_ViolationOrdering(t *testing.T) {
	g := &core.ProjectGraph{
		Nodes: []core.ProjectNode{
			{ID: "1", Name: "Beta.Web", Layer: core.LayerPresentation},
			{ID: "2", Name: "Alpha.Web", Layer: core.LayerPresentation},
			{ID: "3", Name: "Store", Layer: core.LayerInfrastructure},
			{ID: "4", Name: "Kernel", Layer: core.LayerDomain},
		},
		Edges: []core.ProjectEdge{
			{FromID: "1", ToID: "4"},
			{FromID: "2", ToID: "4"},
			{FromID: "4", ToID: "3"},
		},
	}

	violations := NewEngine(nil).Evaluate(g)
	if len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(violations))
	}
	// (fromLayer, fromName, toName): Domain before Presentation, then by name.
	if violations[0].FromName != "Kernel" {
		t.Errorf("expected Domain violation first, got %s", violations[0].FromName)
	}
	if violations[1].FromName != "Alpha.Web" || violations[2].FromName != "Beta.Web" {
		t.Errorf("violations not sorted by fromName: %s, %s", violations[1].FromName, violations[2].FromName)
	}
}
