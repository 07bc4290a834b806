package main

import (
	"github.com/aretw0/deduce/internal/cli"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage saved inference reports",
}

var reportListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return cli.ListReports(cmd.Context(), app, cmd.OutOrStdout())
	},
}

var reportInspectCmd = &cobra.Command{
	Use:   "inspect [id]",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return cli.InspectReport(cmd.Context(), app, args[0], cli.OutputFormat(format), cmd.OutOrStdout())
	},
}

var reportRemoveCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a saved report",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return cli.DeleteReport(cmd.Context(), app, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportListCmd, reportInspectCmd, reportRemoveCmd)

	reportInspectCmd.Flags().String("format", "text", "Output format: text, markdown or json")
}
