package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/cli/output"
	"github.com/archlens-labs/archlens/pkg/core"
)

// NewDriftCommand creates the drift command.
func NewDriftCommand() *cobra.Command {
	var failOnDrift bool

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Compare the graph against the previous run's baseline",
		Long: `Run the analysis and report structural drift: units and
dependencies added or removed since the last run. The first run against a
cache directory establishes the baseline and reports no drift. Every run
overwrites the baseline with the current graph.`,
		Example: `  # Show drift since the last run
  archlens drift

  # Fail CI when the architecture changed
  archlens drift --fail-on-drift`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDrift(cmd, failOnDrift)
		},
	}

	cmd.Flags().BoolVar(&failOnDrift, "fail-on-drift", false, "Exit with an error when structural drift is detected")

	return cmd
}

func runDrift(cmd *cobra.Command, failOnDrift bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	report, err := cmdCtx.Engine.Run(cmd.Context())
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(report.Drift); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderDriftMarkdown(r, report.Drift)
	default:
		renderDriftText(r, report.Drift)
	}

	if failOnDrift && report.Drift.HasDrift() {
		return fmt.Errorf("architecture drift detected")
	}
	return nil
}

// renderDriftText outputs a drift report in styled text format.
func renderDriftText(r *output.Renderer, d *core.DriftReport) {
	styles := r.Styles()

	if !d.BaselineAvailable {
		r.Println(styles.Muted.Render("Drift: no baseline, this run establishes it"))
		return
	}
	if !d.HasDrift() {
		r.Println(styles.Success.Render("Drift: none"))
		return
	}

	r.Println(styles.Warning.Render("Drift detected"))
	for _, p := range d.AddedProjects {
		r.Printf("  %s %s\n", styles.Success.Render("+ unit"), p.Name)
	}
	for _, p := range d.RemovedProjects {
		r.Printf("  %s %s\n", styles.Error.Render("- unit"), p.Name)
	}
	for _, dep := range d.AddedDependencies {
		r.Printf("  %s %s -> %s\n", styles.Success.Render("+ dep"), dep.FromName, dep.ToName)
	}
	for _, dep := range d.RemovedDependencies {
		r.Printf("  %s %s -> %s\n", styles.Error.Render("- dep"), dep.FromName, dep.ToName)
	}
}

// renderDriftMarkdown outputs a drift report in markdown format.
func renderDriftMarkdown(r *output.Renderer, d *core.DriftReport) {
	r.Println(output.FormatHeader(2, "Drift"))

	if !d.BaselineAvailable {
		r.Println("No baseline available; this run establishes it.")
		r.Println("")
		return
	}
	if !d.HasDrift() {
		r.Println("No structural changes since the last run.")
		r.Println("")
		return
	}

	for _, p := range d.AddedProjects {
		r.Printf("- Added unit: %s\n", p.Name)
	}
	for _, p := range d.RemovedProjects {
		r.Printf("- Removed unit: %s\n", p.Name)
	}
	for _, dep := range d.AddedDependencies {
		r.Printf("- Added dependency: %s -> %s\n", dep.FromName, dep.ToName)
	}
	for _, dep := range d.RemovedDependencies {
		r.Printf("- Removed dependency: %s -> %s\n", dep.FromName, dep.ToName)
	}
	r.Println("")
}
