package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/cli/output"
	"github.com/archlens-labs/archlens/internal/rules"
	"github.com/archlens-labs/archlens/pkg/core"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the effective layer-adjacency rules",
		Long: `Display the effective layer rules after merging project
configuration over the built-in defaults. Each rule lists which layers a
source layer may depend on.`,
		Example: `  # Show the effective rules
  archlens rules

  # Output as JSON
  archlens rules --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd)
		},
	}

	return cmd
}

func runRules(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.Renderer

	effective := rules.NewEngine(cmdCtx.Cfg.Project().LayerRules()).Rules()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(effective)
	case output.ModeMarkdown:
		rulesMarkdown(r, effective)
		return nil
	default:
		rulesTable(r, effective)
		return nil
	}
}

// rulesTable outputs rules as a styled table.
func rulesTable(r *output.Renderer, effective []core.LayerRule) {
	r.Header(1, "Layer Rules")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"From Layer", "May Depend On"})
	for _, rule := range effective {
		t.AppendRow(table.Row{string(rule.FromLayer), layerList(rule.Allowed)})
	}
	t.Render()
}

// rulesMarkdown outputs rules in markdown format.
func rulesMarkdown(r *output.Renderer, effective []core.LayerRule) {
	r.Println(output.FormatHeader(1, "Layer Rules"))
	r.Println("")
	r.Println("| From Layer | May Depend On |")
	r.Println("| --- | --- |")
	for _, rule := range effective {
		r.Printf("| %s | %s |\n", rule.FromLayer, layerList(rule.Allowed))
	}
}
