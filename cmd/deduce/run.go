package main

import (
	"os"

	"github.com/aretw0/deduce"
	"github.com/aretw0/deduce/internal/cli"
	"github.com/aretw0/deduce/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [symptom...]",
	Short: "Infer conclusions from a list of symptoms",
	Long: `Normalizes the given symptoms, runs the rule catalog to a fixpoint and
prints the inference steps. Without arguments on a terminal, prompts for a
comma separated line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		goals, _ := cmd.Flags().GetStringSlice("goal")
		jsonMode, _ := cmd.Flags().GetBool("json")
		markdown, _ := cmd.Flags().GetBool("markdown")
		save, _ := cmd.Flags().GetBool("save")

		format := cli.FormatText
		switch {
		case jsonMode:
			format = cli.FormatJSON
		case markdown:
			format = cli.FormatMarkdown
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if interactive && len(args) == 0 && format == cli.FormatText {
			tui.PrintBanner(cmd.OutOrStdout(), deduce.Version)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		_, err = cli.Run(sigCtx, app, cli.RunOptions{
			Args:        args,
			Goals:       goals,
			Format:      format,
			Save:        save,
			Interactive: interactive,
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSlice("goal", nil, "Stop as soon as every goal fact is derived (repeatable)")
	runCmd.Flags().Int("max-sweeps", 0, "Upper bound on sweeps (default 1000)")
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().Bool("markdown", false, "Render the report as Markdown")
	runCmd.Flags().Bool("save", false, "Persist the report in the configured store")
}
