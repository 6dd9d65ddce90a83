package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/tableskema"
	"github.com/reoring/tableskema/csv"
)

var inferCmd = &cobra.Command{
	Use:   "infer <data.csv>",
	Short: "Infer a schema descriptor from CSV data",
	Long: `Samples rows from a CSV file, infers a field descriptor for every column
and prints the resulting schema descriptor as JSON on stdout.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd)
		limit, _ := cmd.Flags().GetInt("limit")
		normalize, _ := cmd.Flags().GetBool("normalize-names")

		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening data: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()

		headers, rows, err := csv.Sample(f, limit, csvOptions(cmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading data: %v\n", err)
			os.Exit(2)
		}
		log.Debug("sampled table", "columns", len(headers), "rows", len(rows))

		s, err := tableskema.InferSchema(headers, rows, tableskema.InferOption{
			NormalizeNames: normalize,
		})
		if err != nil {
			if iss, ok := tableskema.AsIssues(err); ok {
				reportIssues(cmd, iss)
				os.Exit(exitCode(iss))
			}
			fmt.Fprintf(os.Stderr, "Error inferring schema: %v\n", err)
			os.Exit(2)
		}

		out, err := json.MarshalIndent(s.Descriptor(), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding descriptor: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(string(out))
	},
}

func init() {
	inferCmd.Flags().Int("limit", 100, "Maximum rows to sample (0 samples the whole file)")
	inferCmd.Flags().Bool("normalize-names", false, "Normalize header names to identifier form")
	rootCmd.AddCommand(inferCmd)
}
