package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golives/glc/internal/csvfile"
	"github.com/golives/glc/internal/schema"
	"github.com/golives/glc/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.csv>",
	Short: "Check a CSV file's header against the catalog schema",
	Long: `Validate the header of an import file without importing anything.

Reports missing required fields (fatal) and columns the import would
ignore, with suggestions for close matches.

Example:
  glc validate golives.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := csvfile.Read(args[0])
		if err != nil {
			return err
		}

		s := types.DefaultSchema()
		warnings, err := schema.Validate(file.Header, s)
		if err != nil {
			fmt.Println(bgRed(err.Error()))
			fmt.Println("Required header fields:")
			fmt.Println("  " + strings.Join(s.Required(), ", "))
			return fmt.Errorf("header validation failed")
		}

		for _, w := range warnings {
			fmt.Println(yellow("WARNING: " + w.String()))
		}
		fmt.Println(green(fmt.Sprintf("%s: header ok, %d data row(s)", args[0], len(file.Rows))))
		return nil
	},
}
