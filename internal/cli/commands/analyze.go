package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/cli/output"
	"github.com/archlens-labs/archlens/pkg/core"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	var failOnViolations bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full architecture analysis",
		Long: `Run the full analysis pipeline over the workspace: build the
dependency graph, classify units into layers, evaluate layer rules, detect
drift against the previous run, and scan documents incrementally.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Analyze the workspace in the current project
  archlens analyze

  # Fail the build when layer rules are broken
  archlens analyze --fail-on-violations

  # Emit the full report as JSON
  archlens analyze --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, failOnViolations)
		},
	}

	cmd.Flags().BoolVar(&failOnViolations, "fail-on-violations", false, "Exit with an error when layer rule violations are found")

	return cmd
}

func runAnalyze(cmd *cobra.Command, failOnViolations bool) error {
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
		if err := r.JSON(report); err != nil {
			return err
		}
	case output.ModeMarkdown:
		analyzeMarkdown(r, report)
	default:
		analyzeText(r, report)
	}

	if failOnViolations && len(report.Violations) > 0 {
		return fmt.Errorf("%d layer rule violation(s) found", len(report.Violations))
	}
	return nil
}

// analyzeText outputs the report in styled text format.
func analyzeText(r *output.Renderer, report *core.Report) {
	styles := r.Styles()

	r.Header(1, "Architecture Analysis")
	r.Printf("%s %s\n", styles.Muted.Render("workspace:"), report.WorkspacePath)
	r.Printf("%s %s\n", styles.Muted.Render("run:"), report.RunID)
	r.Println("")

	r.Printf("%s %d units, %d dependencies\n",
		styles.Bold.Render("Graph:"), len(report.Graph.Nodes), len(report.Graph.Edges))

	if len(report.Graph.Cycles) > 0 {
		r.Println(styles.Warning.Render(fmt.Sprintf("Cycles: %d", len(report.Graph.Cycles))))
		for _, c := range report.Graph.Cycles {
			r.Printf("  %s\n", strings.Join(cycleNames(report.Graph, c), " -> "))
		}
	}

	if len(report.Violations) == 0 {
		r.Println(styles.Success.Render("Rules: no violations"))
	} else {
		r.Println(styles.Error.Render(fmt.Sprintf("Violations: %d", len(report.Violations))))
		for _, v := range report.Violations {
			r.Printf("  %s (%s) -> %s (%s)\n", v.FromName, v.FromLayer, v.ToName, v.ToLayer)
			if v.Guidance != "" {
				r.Printf("    %s\n", styles.Muted.Render(v.Guidance))
			}
		}
	}

	renderDriftText(r, report.Drift)

	if report.Scan != nil && report.Scan.Documents > 0 {
		r.Println(styles.Muted.Render(fmt.Sprintf(
			"Scan: %d documents, %d cached, %d changed, %d errors",
			report.Scan.Documents, report.Scan.Hits, report.Scan.Misses, report.Scan.Errors)))
	}
}

// analyzeMarkdown outputs the report in markdown format.
func analyzeMarkdown(r *output.Renderer, report *core.Report) {
	r.Println(output.FormatHeader(1, "Architecture Analysis"))
	r.Println("")
	r.Println(output.FormatKeyValue("Workspace", report.WorkspacePath))
	r.Println(output.FormatKeyValue("Units", fmt.Sprintf("%d", len(report.Graph.Nodes))))
	r.Println(output.FormatKeyValue("Dependencies", fmt.Sprintf("%d", len(report.Graph.Edges))))
	r.Println(output.FormatKeyValue("Cycles", fmt.Sprintf("%d", len(report.Graph.Cycles))))
	r.Println("")

	r.Println(output.FormatHeader(2, "Violations"))
	if len(report.Violations) == 0 {
		r.Println("None.")
	} else {
		for _, v := range report.Violations {
			r.Printf("- %s (%s) -> %s (%s): allowed %s\n",
				v.FromName, v.FromLayer, v.ToName, v.ToLayer, layerList(v.Allowed))
		}
	}
	r.Println("")

	renderDriftMarkdown(r, report.Drift)

	if report.Scan != nil && report.Scan.Documents > 0 {
		r.Println(output.FormatHeader(2, "Scan"))
		r.Println(output.FormatKeyValue("Documents", fmt.Sprintf("%d", report.Scan.Documents)))
		r.Println(output.FormatKeyValue("Cache hits", fmt.Sprintf("%d", report.Scan.Hits)))
		r.Println(output.FormatKeyValue("Cache misses", fmt.Sprintf("%d", report.Scan.Misses)))
		r.Println(output.FormatKeyValue("Errors", fmt.Sprintf("%d", report.Scan.Errors)))
	}
}

// cycleNames maps cycle member IDs to unit names.
func cycleNames(g *core.ProjectGraph, c core.Cycle) []string {
	names := make([]string, 0, len(c.Members))
	for _, id := range c.Members {
		if n, ok := g.Node(id); ok {
			names = append(names, n.Name)
		} else {
			names = append(names, id)
		}
	}
	return names
}

func layerList(layers []core.Layer) string {
	parts := make([]string, 0, len(layers))
	for _, l := range layers {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ", ")
}
