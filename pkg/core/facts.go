package core

// BuildUnitFacts holds everything the pipeline derives about a single build
// unit. Facts are computed once per unit per run and never mutated.
type BuildUnitFacts struct {
	// ID is a stable hash of the unit's normalized path. It is a pure
	// function of the path: unchanged input yields the same ID across runs.
	ID string `json:"id"`

	// Name is the unit's display name from the project model.
	Name string `json:"name"`

	// Path is the normalized, separator-unified, root-relative path.
	Path string `json:"path"`

	// Layer is the architectural layer assigned by the classifier.
	Layer Layer `json:"layer"`

	// LayerReason explains which rule or heuristic assigned the layer.
	LayerReason string `json:"layerReason"`

	// MatchedRule is the user pattern that matched, if any.
	MatchedRule string `json:"matchedRule,omitempty"`

	// IsTest indicates the unit is a test project.
	IsTest bool `json:"isTest"`

	// IsTestReason explains how the test flag was determined.
	IsTestReason string `json:"isTestReason,omitempty"`
}

// BuildUnit is the input the project-model provider supplies per unit.
// Only these fields are required by the analysis core.
type BuildUnit struct {
	// Name is the unit's display name.
	Name string

	// Path is the unit's file path. Empty when the provider has no
	// on-disk location for the unit.
	Path string

	// References holds the names of units this unit depends on.
	References []string

	// PackageRefs holds external package identifiers the unit references,
	// used by classification heuristics (web framework, ORM markers).
	PackageRefs []string

	// IsTest is the provider's declared test flag, when known.
	IsTest bool

	// Documents lists content files belonging to the unit, fed to the
	// incremental document scan.
	Documents []string
}
