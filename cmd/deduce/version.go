package main

import (
	"fmt"

	"github.com/aretw0/deduce"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of deduce",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "deduce version %s\n", deduce.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
