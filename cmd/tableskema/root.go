package main

import (
	"fmt"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/tableskema"
	"github.com/reoring/tableskema/csv"
	"github.com/reoring/tableskema/i18n"
	"github.com/reoring/tableskema/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tableskema",
	Short: "tableskema validates and casts tabular data against schemas",
	Long: `tableskema loads schema descriptors, casts loosely typed tabular data into
native values and reports every issue it finds instead of stopping at the first.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
			i18n.SetLanguage(lang)
		}
	},
}

// Execute runs the root command. Usage and load problems exit with 2;
// subcommands exit with 1 themselves when data failed validation.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().String("lang", "", "Language for reported messages (en, ja)")
	rootCmd.PersistentFlags().Bool("json", false, "Report issues as JSON instead of text")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress issue reports and confirmations; rely on the exit code")
	rootCmd.PersistentFlags().String("delimiter", "", "CSV field delimiter (default comma)")
	rootCmd.PersistentFlags().String("encoding", "", "CSV character encoding, an IANA name (default UTF-8)")
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	if quiet(cmd) {
		return logging.NewNop()
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}

func csvOptions(cmd *cobra.Command) csv.Option {
	opt := csv.Option{}
	if delim, _ := cmd.Flags().GetString("delimiter"); delim != "" {
		opt.Delimiter = []rune(delim)[0]
	}
	opt.Encoding, _ = cmd.Flags().GetString("encoding")
	return opt
}

// issueReport is the JSON shape of one reported issue. Cause is folded into
// the message by the library already, so only the stable fields go out.
type issueReport struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
	Row     int    `json:"row,omitempty"`
}

// reportIssues prints issues to stderr, localized when --lang asks for a
// language other than the built-in English wording. --quiet drops the
// report; the exit code still carries the verdict.
func reportIssues(cmd *cobra.Command, iss tableskema.Issues) {
	if quiet(cmd) {
		return
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" && lang != "en" {
		iss = iss.Localize()
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := make([]issueReport, 0, len(iss))
		for _, is := range iss {
			out = append(out, issueReport{
				Kind:    is.Kind,
				Code:    is.Code,
				Field:   is.Field,
				Value:   is.Value,
				Message: is.Message,
				Row:     is.Row,
			})
		}
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding issues: %v\n", err)
		}
		return
	}
	for _, is := range iss {
		switch {
		case is.Row > 0 && is.Field != "":
			fmt.Fprintf(os.Stderr, "row %d: %s: %s\n", is.Row, is.Field, is.Message)
		case is.Row > 0:
			fmt.Fprintf(os.Stderr, "row %d: %s\n", is.Row, is.Message)
		case is.Field != "":
			fmt.Fprintf(os.Stderr, "%s: %s\n", is.Field, is.Message)
		default:
			fmt.Fprintln(os.Stderr, is.Message)
		}
	}
}

// loadSchema builds a schema from a descriptor source argument and exits with
// the right code when it cannot. Structural issues are validation failures
// (exit 1); unreadable sources are usage problems (exit 2).
func loadSchema(cmd *cobra.Command, source string) *tableskema.Schema {
	s, err := tableskema.New(source)
	if err != nil {
		if iss, ok := tableskema.AsIssues(err); ok {
			reportIssues(cmd, iss)
			os.Exit(exitCode(iss))
		}
		fmt.Fprintf(os.Stderr, "Error loading descriptor: %v\n", err)
		os.Exit(2)
	}
	return s
}

// exitCode maps issues to the CLI contract: unreadable sources are usage
// problems (2), everything else is a validation failure (1).
func exitCode(iss tableskema.Issues) int {
	for _, is := range iss {
		if is.Kind != tableskema.KindLoadFailed {
			return 1
		}
	}
	return 2
}
