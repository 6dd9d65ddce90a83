package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/tableskema/csv"
)

var castCmd = &cobra.Command{
	Use:   "cast <data.csv>",
	Short: "Cast CSV rows against a schema descriptor",
	Long: `Casts every row of a CSV file against a schema descriptor and prints the
cast rows as JSON lines on stdout. Rows that fail keep the run going; their
issues are reported with row numbers once the whole file has been read.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd)
		schemaSrc, _ := cmd.Flags().GetString("schema")
		workers, _ := cmd.Flags().GetInt("workers")
		if schemaSrc == "" {
			fmt.Fprintln(os.Stderr, "Error: --schema is required")
			os.Exit(2)
		}

		s := loadSchema(cmd, schemaSrc)

		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening data: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()

		t, err := csv.Open(f, csvOptions(cmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading data: %v\n", err)
			os.Exit(2)
		}

		rows, iss := csv.CastAll(cmd.Context(), t, s, csv.CastOption{Workers: workers})
		log.Debug("cast table", "rows", len(rows), "issues", len(iss), "workers", workers)

		enc := json.NewEncoder(os.Stdout)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding row: %v\n", err)
				os.Exit(2)
			}
		}
		if len(iss) > 0 {
			reportIssues(cmd, iss)
			os.Exit(1)
		}
	},
}

func init() {
	castCmd.Flags().String("schema", "", "Schema descriptor file, URL or inline JSON (required)")
	castCmd.Flags().Int("workers", 1, "Casting workers; higher values cast rows concurrently")
	rootCmd.AddCommand(castCmd)
}
