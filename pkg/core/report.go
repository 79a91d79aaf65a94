package core

// LayerRule is one effective layer-adjacency rule: edges leaving FromLayer
// may only point at layers in Allowed. Allowed is sorted.
type LayerRule struct {
	FromLayer Layer   `json:"fromLayer"`
	Allowed   []Layer `json:"allowedLayers"`
}

// Permits reports whether the rule allows an edge into the target layer.
func (r LayerRule) Permits(to Layer) bool {
	for _, l := range r.Allowed {
		if l == to {
			return true
		}
	}
	return false
}

// RuleViolation is one edge that breaks the layer-adjacency policy.
// Violations are derived per run and never persisted.
type RuleViolation struct {
	FromID    string  `json:"fromId"`
	FromName  string  `json:"fromName"`
	FromLayer Layer   `json:"fromLayer"`
	ToID      string  `json:"toId"`
	ToName    string  `json:"toName"`
	ToLayer   Layer   `json:"toLayer"`
	Allowed   []Layer `json:"allowedLayers"`
	Rule      string  `json:"rule"`
	Guidance  string  `json:"guidance,omitempty"`
}

// ScanSummary aggregates the incremental document scan results.
type ScanSummary struct {
	Documents int `json:"documents"`
	Hits      int `json:"cacheHits"`
	Misses    int `json:"cacheMisses"`
	Errors    int `json:"errors"`
}

// Report is the full analysis output for one run.
type Report struct {
	WorkspacePath   string           `json:"solutionPath"`
	AnalysisVersion string           `json:"analysisVersion"`
	RunID           string           `json:"runId"`
	Units           []BuildUnitFacts `json:"units"`
	Graph           *ProjectGraph    `json:"graph"`
	Rules           []LayerRule      `json:"rules"`
	Violations      []RuleViolation  `json:"violations"`
	Drift           *DriftReport     `json:"drift"`
	Scan            *ScanSummary     `json:"scan,omitempty"`
}
