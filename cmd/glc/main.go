package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/golives/glc/internal/config"
)

// Version is the glc release version
var Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "glc",
	Short: "glc - Go-Lives Catalog importer",
	Long: `Migrates property-implementation records from a CSV export into the
Go-Lives Catalog, pairing each record with a screenshot from a local folder.

The first record is imported as a trial and reviewed by a human; only then
is the remainder of the batch committed. Rejecting the trial rolls back the
uploaded screenshot and the written record.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Initialize()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glc version %s\n", Version)
	},
}

func main() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
