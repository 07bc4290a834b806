package main

import (
	"fmt"

	"github.com/aretw0/deduce/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the rule graph visualization",
	Long: `Outputs a Mermaid diagram (graph LR) linking antecedent facts to rules and
rules to their consequents. With --facts, the run over those facts is
overlaid: user facts, fired rules and inferred facts are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if line, _ := cmd.Flags().GetString("facts"); line != "" {
			report, _, err := app.Engine.InferInput(cmd.Context(), line)
			if report == nil {
				return err
			}
			overlay = graph.OverlayFromReport(report)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(app.Engine.Rules(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("facts", "", "Comma separated symptoms to overlay on the graph")
}
