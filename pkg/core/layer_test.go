package core

import "testing"

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in   string
		want Layer
		ok   bool
	}{
		{"Domain", LayerDomain, true},
		{"domain", LayerDomain, true},
		{"INFRASTRUCTURE", LayerInfrastructure, true},
		{"tests", LayerTests, true},
		{"unknown", LayerUnknown, true},
		{"", LayerUnknown, false},
		{"DataAccess", LayerUnknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseLayer(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLayer(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLayerRule_Permits(t *testing.T) {
	rule := LayerRule{
		FromLayer: LayerPresentation,
		Allowed:   []Layer{LayerApplication, LayerPresentation},
	}

	if !rule.Permits(LayerApplication) {
		t.Error("expected Application to be permitted")
	}
	if rule.Permits(LayerDomain) {
		t.Error("expected Domain to be forbidden")
	}
}

func TestDriftReport_HasDrift(t *testing.T) {
	empty := &DriftReport{BaselineAvailable: true}
	if empty.HasDrift() {
		t.Error("empty report should have no drift")
	}

	added := &DriftReport{
		BaselineAvailable: true,
		AddedProjects:     []DriftProject{{Name: "Core", ID: "abc"}},
	}
	if !added.HasDrift() {
		t.Error("report with added project should have drift")
	}
}

func TestProjectGraph_FanInFanOut(t *testing.T) {
	g := &ProjectGraph{
		Nodes: []ProjectNode{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []ProjectEdge{
			{FromID: "a", ToID: "b"},
			{FromID: "a", ToID: "c"},
			{FromID: "b", ToID: "c"},
		},
	}

	if got := g.FanOut("a"); got != 2 {
		t.Errorf("FanOut(a) = %d, want 2", got)
	}
	if got := g.FanIn("c"); got != 2 {
		t.Errorf("FanIn(c) = %d, want 2", got)
	}
	if got := g.FanIn("a"); got != 0 {
		t.Errorf("FanIn(a) = %d, want 0", got)
	}
}
