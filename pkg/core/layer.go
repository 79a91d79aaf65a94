package core

import "strings"

// Layer is an architectural bucket assigned to a build unit.
type Layer string

// Known layers, ordered from the outside of the architecture inward.
const (
	LayerPresentation   Layer = "Presentation"
	LayerApplication    Layer = "Application"
	LayerDomain         Layer = "Domain"
	LayerInfrastructure Layer = "Infrastructure"
	LayerTests          Layer = "Tests"
	LayerUnknown        Layer = "Unknown"
)

// KnownLayers returns every layer the classifier can assign, in a fixed order.
func KnownLayers() []Layer {
	return []Layer{
		LayerPresentation,
		LayerApplication,
		LayerDomain,
		LayerInfrastructure,
		LayerTests,
		LayerUnknown,
	}
}

// ParseLayer converts a string to a Layer value, case-insensitively.
// Returns the layer and true if valid, or LayerUnknown and false if invalid.
func ParseLayer(s string) (Layer, bool) {
	for _, l := range KnownLayers() {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return LayerUnknown, false
}

// String returns the layer name.
func (l Layer) String() string { return string(l) }
