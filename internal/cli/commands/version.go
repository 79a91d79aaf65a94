package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/engine"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display archlens version and analysis format information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "archlens v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "analysis version %s\n", engine.AnalysisVersion)
		},
	}
}
