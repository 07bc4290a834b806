package main

import (
	"fmt"
	"os"

	"github.com/aretw0/deduce/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deduce",
	Short: "Deduce is a forward-chaining rule engine for symptom checking",
	Long: `Deduce maps free-text symptoms onto a controlled vocabulary and applies
an ordered IF/THEN rule catalog until no new fact can be derived, printing
every inference step with its provenance.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./deduce.yaml)")
	rootCmd.PersistentFlags().String("rules", "", "Rule catalog file or directory (default: built-in catalog)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off")
}

// newApp builds the shared application from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	rulesPath, _ := cmd.Flags().GetString("rules")
	logLevel, _ := cmd.Flags().GetString("log-level")

	opts := cli.Options{
		ConfigPath: configPath,
		RulesPath:  rulesPath,
		LogLevel:   logLevel,
	}
	if f := cmd.Flags().Lookup("max-sweeps"); f != nil && f.Changed {
		opts.MaxSweeps, _ = cmd.Flags().GetInt("max-sweeps")
	}
	return cli.NewApp(opts)
}
