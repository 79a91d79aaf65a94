// Package provider loads the project model the analysis pipeline consumes.
//
// The analysis core treats the project model as external input: anything
// able to produce build units and their references can implement Provider.
// The built-in implementation reads a workspace manifest file, keeping
// source-level parsing and build-system semantics out of this tool.
package provider

import (
	"context"

	"github.com/archlens-labs/archlens/pkg/core"
)

// Workspace is a fully loaded, immutable project-model snapshot.
type Workspace struct {
	// Path is where the model was loaded from (manifest file path).
	Path string

	// Root is the repository root all unit paths normalize against.
	Root string

	// Units holds every build unit in the workspace.
	Units []core.BuildUnit
}

// Provider loads a workspace snapshot.
type Provider interface {
	Load(ctx context.Context) (*Workspace, error)
}
