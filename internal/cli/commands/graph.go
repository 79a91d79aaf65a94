package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/cli/output"
	"github.com/archlens-labs/archlens/pkg/core"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the project dependency graph",
		Long: `Display the project dependency graph: every unit with its
layer, fan-in, and fan-out, plus any dependency cycles.

Output adapts to environment:
  - Terminal: Styled table output
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Show the graph
  archlens graph

  # Output as JSON
  archlens graph --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd)
		},
	}

	return cmd
}

func runGraph(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	report, err := cmdCtx.Engine.Run(cmd.Context())
	if err != nil {
		return err
	}
	g := report.Graph

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(g)
	case output.ModeMarkdown:
		graphMarkdown(r, g)
		return nil
	default:
		graphTable(r, g)
		return nil
	}
}

// graphTable outputs the graph as a styled table.
func graphTable(r *output.Renderer, g *core.ProjectGraph) {
	styles := r.Styles()

	r.Header(1, "Dependency Graph")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Unit", "Layer", "Fan-In", "Fan-Out"})
	for _, n := range g.Nodes {
		t.AppendRow(table.Row{n.Name, string(n.Layer), g.FanIn(n.ID), g.FanOut(n.ID)})
	}
	t.Render()

	if len(g.Cycles) > 0 {
		r.Println(styles.Warning.Render(fmt.Sprintf("Cycles: %d", len(g.Cycles))))
		for _, c := range g.Cycles {
			r.Printf("  %s\n", strings.Join(cycleNames(g, c), " -> "))
		}
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d units, %d dependencies", len(g.Nodes), len(g.Edges))))
}

// graphMarkdown outputs the graph in markdown format.
func graphMarkdown(r *output.Renderer, g *core.ProjectGraph) {
	r.Println(output.FormatHeader(1, "Dependency Graph"))
	r.Println("")

	r.Println("| Unit | Layer | Fan-In | Fan-Out |")
	r.Println("| --- | --- | --- | --- |")
	for _, n := range g.Nodes {
		r.Printf("| %s | %s | %d | %d |\n", n.Name, n.Layer, g.FanIn(n.ID), g.FanOut(n.ID))
	}
	r.Println("")

	if len(g.Cycles) > 0 {
		r.Println(output.FormatHeader(2, "Cycles"))
		for _, c := range g.Cycles {
			r.Printf("- %s\n", strings.Join(cycleNames(g, c), " -> "))
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Units", fmt.Sprintf("%d", len(g.Nodes))))
	r.Println(output.FormatKeyValue("Total Dependencies", fmt.Sprintf("%d", len(g.Edges))))
}
