package classify

import (
	"testing"

	"github.com/archlens-labs/archlens/pkg/core"
)

func TestClassify_SuffixRules(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name  string
		layer core.Layer
	}{
		{"Shop.Web", core.LayerPresentation},
		{"Shop.Api", core.LayerPresentation},
		{"Shop.Infrastructure", core.LayerInfrastructure},
		{"Shop.Persistence", core.LayerInfrastructure},
		{"Shop.Application", core.LayerApplication},
		{"Shop.Services", core.LayerApplication},
		{"Shop.Domain", core.LayerDomain},
		{"Shop.Core", core.LayerDomain},
		{"Shop.Tests", core.LayerTests},
		{"Shop.Domain.UnitTests", core.LayerTests},
	}

	for _, tt := range tests {
		got := c.Classify(tt.name, "", nil, false)
		if got.Layer != tt.layer {
			t.Errorf("Classify(%q).Layer = %v, want %v", tt.name, got.Layer, tt.layer)
		}
		if got.Reason == "" {
			t.Errorf("Classify(%q) recorded no reason", tt.name)
		}
	}
}

func TestClassify_TestSuffixWinsOverLayerSuffix(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("Shop.Domain.Tests", "", nil, false)
	if got.Layer != core.LayerTests {
		t.Errorf("expected Tests, got %v", got.Layer)
	}
	if !got.IsTest {
		t.Error("expected IsTest to be set")
	}
}

func TestClassify_UserRules(t *testing.T) {
	c := NewClassifier([]UserRule{
		{Pattern: "Legacy.*", Layer: core.LayerInfrastructure},
		{Pattern: "Gateway?", Layer: core.LayerPresentation},
	})

	got := c.Classify("Legacy.Billing", "", nil, false)
	if got.Layer != core.LayerInfrastructure {
		t.Errorf("expected Infrastructure, got %v", got.Layer)
	}
	if got.MatchedRule != "Legacy.*" {
		t.Errorf("expected matched rule Legacy.*, got %q", got.MatchedRule)
	}

	got = c.Classify("Gateway1", "", nil, false)
	if got.Layer != core.LayerPresentation {
		t.Errorf("expected Presentation, got %v", got.Layer)
	}

	// Pattern is anchored: no partial match.
	got = c.Classify("Gateway12", "", nil, false)
	if got.Layer == core.LayerPresentation {
		t.Error("anchored pattern should not match a longer name")
	}
}

func TestClassify_BuiltinBeatsUserRule(t *testing.T) {
	c := NewClassifier([]UserRule{
		{Pattern: "Shop.Domain", Layer: core.LayerInfrastructure},
	})

	got := c.Classify("Shop.Domain", "", nil, false)
	if got.Layer != core.LayerDomain {
		t.Errorf("built-in suffix rule should win, got %v", got.Layer)
	}
}

func TestClassify_MalformedGlobIsNonMatching(t *testing.T) {
	c := NewClassifier([]UserRule{
		{Pattern: "[z-a", Layer: core.LayerDomain},
	})

	got := c.Classify("za", "", nil, false)
	if got.Layer == core.LayerDomain {
		t.Error("malformed glob must never match")
	}
}

func TestClassify_Heuristics(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("Frontend", "", []string{"Microsoft.AspNetCore.App"}, false)
	if got.Layer != core.LayerPresentation {
		t.Errorf("web package marker: expected Presentation, got %v", got.Layer)
	}

	got = c.Classify("Storage", "", []string{"Microsoft.EntityFrameworkCore"}, false)
	if got.Layer != core.LayerInfrastructure {
		t.Errorf("data package marker: expected Infrastructure, got %v", got.Layer)
	}

	got = c.Classify("OrderModel", "", nil, false)
	if got.Layer != core.LayerDomain {
		t.Errorf("domain token: expected Domain, got %v", got.Layer)
	}

	got = c.Classify("BillingService", "", nil, false)
	if got.Layer != core.LayerApplication {
		t.Errorf("application token: expected Application, got %v", got.Layer)
	}
}

func TestClassify_DeclaredTestFlag(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("Harness", "", nil, true)
	if got.Layer != core.LayerTests {
		t.Errorf("declared test flag: expected Tests, got %v", got.Layer)
	}
	if got.IsTestReason != "declared by provider" {
		t.Errorf("unexpected test reason %q", got.IsTestReason)
	}
}

func TestClassify_DefaultUnknown(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("Zebra", "", nil, false)
	if got.Layer != core.LayerUnknown {
		t.Errorf("expected Unknown, got %v", got.Layer)
	}
	if got.Reason != "no rule matched" {
		t.Errorf("unexpected reason %q", got.Reason)
	}
}
