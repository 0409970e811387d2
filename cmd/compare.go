package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearlend/docmatch/internal/match"
)

var compareCmd = &cobra.Command{
	Use:   "compare <string1> <string2>",
	Short: "Score two strings with the multi-metric similarity engine",
	Long: `Scores two strings with four similarity metrics (fuzz ratio,
Jaro-Winkler, Levenshtein distance, sequence ratio) under a field-aware
threshold profile, and prints the full report as JSON.

Examples:
  # Default profile
  compare "2104 North Old Highway 91" "2104 N Old Hwy 91"

  # Name profile with loose token matching
  compare --field name --loose "John A. Smith" "Smith, John"`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("field", "default", "threshold profile: name, address, or default")
	f.Bool("loose", false, "include field-aware fallbacks (token matching for names, component matching for addresses)")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	field, _ := cmd.Flags().GetString("field")
	loose, _ := cmd.Flags().GetBool("loose")

	ft := match.FieldType(field)
	switch ft {
	case match.FieldName, match.FieldAddress, match.FieldDefault:
	default:
		return eris.Errorf("compare: --field must be name, address, or default (got %q)", field)
	}

	report := match.Compare(args[0], args[1], ft)
	if loose {
		report.MatchDecision = match.SafeStringCompare(args[0], args[1], ft)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "compare: marshal report")
	}
	fmt.Println(string(out))
	return nil
}
