// Package core defines the shared language of the archlens system.
//
// This package contains:
//   - Domain entities (BuildUnitFacts, ProjectGraph, GraphSnapshot, etc.)
//   - Report shapes produced by the analysis pipeline
//   - The Layer vocabulary used by classification and rules
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
