package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/tableskema/ddl"
)

var ddlCmd = &cobra.Command{
	Use:   "ddl <descriptor>",
	Short: "Print a CREATE TABLE statement for a schema",
	Long: `Loads a schema descriptor and prints a CREATE TABLE statement whose columns
match the schema's fields. The statement goes to stdout; nothing is executed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		table, _ := cmd.Flags().GetString("table")
		dialect, _ := cmd.Flags().GetString("dialect")
		ifNotExists, _ := cmd.Flags().GetBool("if-not-exists")

		s := loadSchema(cmd, args[0])

		stmt, err := ddl.CreateTable(s, table, ddl.Option{
			Dialect:     ddl.Dialect(dialect),
			IfNotExists: ifNotExists,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building statement: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(stmt)
	},
}

func init() {
	ddlCmd.Flags().String("table", "data", "Name of the generated table")
	ddlCmd.Flags().String("dialect", "postgres", "SQL dialect (postgres, sqlite)")
	ddlCmd.Flags().Bool("if-not-exists", false, "Add IF NOT EXISTS to the statement")
	rootCmd.AddCommand(ddlCmd)
}
