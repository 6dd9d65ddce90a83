package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/tableskema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <descriptor>",
	Short: "Check a schema descriptor for structural problems",
	Long: `Loads a descriptor from a file, URL or inline JSON and reports every
structural problem it contains. Exits 0 when the descriptor is usable.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if iss := tableskema.Validate(args[0]); len(iss) > 0 {
			reportIssues(cmd, iss)
			os.Exit(exitCode(iss))
		}
		if !quiet(cmd) {
			fmt.Println("descriptor is valid")
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
