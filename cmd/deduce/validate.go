package main

import (
	"fmt"

	"github.com/aretw0/deduce/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint the rule catalog",
	Long: `Loads the rule catalog and reports duplicate IDs, inert rules, self
references, redundant rules and antecedents that neither a rule nor the
vocabulary can supply. Exits non-zero when an error-severity issue is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := cli.ValidateCatalog(app, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
