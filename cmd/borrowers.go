package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearlend/docmatch/internal/borrower"
)

var borrowersCmd = &cobra.Command{
	Use:   "borrowers",
	Short: "Match document borrower names against note positions",
}

var borrowersIdentifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Map document borrower names onto canonical note positions",
	Long: `Maps the borrower names found on a document onto the co-borrower
positions of the note and prints the matched position labels as JSON.

Example:
  borrowers identify --doc-name "Jane A. Doe" --doc-name "John Q. Public" \
    --b1 "Jane Doe" --b2 "John Public"`,
	RunE: runBorrowersIdentify,
}

var borrowersMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Check document borrowers against note borrowers",
	Long: `Checks the borrower names found on a document against the note's
borrowers and prints true or false. Mode "any" passes when at least one
document borrower matches a note borrower; mode "all" requires every
document borrower to match.

Example:
  borrowers match --doc-name "Jane A. Doe" --note-name "Jane Doe" \
    --note-name "John Public" --mode any`,
	RunE: runBorrowersMatch,
}

func init() {
	f := borrowersIdentifyCmd.Flags()
	f.StringSlice("doc-name", nil, "borrower name found on the document (repeatable)")
	f.String("b1", "", "canonical borrower at position 1")
	f.String("b2", "", "canonical borrower at position 2")
	f.String("b3", "", "canonical borrower at position 3")
	f.String("b4", "", "canonical borrower at position 4")

	mf := borrowersMatchCmd.Flags()
	mf.StringSlice("doc-name", nil, "borrower name found on the document (repeatable)")
	mf.StringSlice("note-name", nil, "borrower name on the note (repeatable)")
	mf.String("mode", "", "any or all (default from config)")

	borrowersCmd.AddCommand(borrowersIdentifyCmd)
	borrowersCmd.AddCommand(borrowersMatchCmd)
	rootCmd.AddCommand(borrowersCmd)
}

func runBorrowersMatch(cmd *cobra.Command, _ []string) error {
	docNames, _ := cmd.Flags().GetStringSlice("doc-name")
	noteNames, _ := cmd.Flags().GetStringSlice("note-name")
	if len(docNames) == 0 || len(noteNames) == 0 {
		return eris.New("borrowers: --doc-name and --note-name are both required")
	}

	matched, err := matchBorrowersByMode(flagOrConfig(cmd, "mode", cfg.Borrower.SubsetMode), docNames, noteNames)
	if err != nil {
		return err
	}
	fmt.Println(matched)
	return nil
}

// matchBorrowersByMode dispatches on the configured subset mode.
func matchBorrowersByMode(mode string, docNames, noteNames []string) (bool, error) {
	switch mode {
	case "any":
		return borrower.MatchAnyBorrower(docNames, noteNames), nil
	case "all":
		return borrower.MatchAllBorrowers(docNames, noteNames), nil
	default:
		return false, eris.Errorf("borrowers: --mode must be any or all (got %q)", mode)
	}
}

func runBorrowersIdentify(cmd *cobra.Command, _ []string) error {
	docNames, _ := cmd.Flags().GetStringSlice("doc-name")
	if len(docNames) == 0 {
		return eris.New("borrowers: at least one --doc-name is required")
	}

	canonical := make(map[int]string, borrower.MaxPositions)
	for pos, flag := range map[int]string{1: "b1", 2: "b2", 3: "b3", 4: "b4"} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			canonical[pos] = v
		}
	}
	if len(canonical) == 0 {
		return eris.New("borrowers: at least one of --b1..--b4 is required")
	}

	positions := borrower.IdentifyBorrowers(docNames, canonical)
	if positions == nil {
		positions = []string{}
	}

	out, err := json.Marshal(positions)
	if err != nil {
		return eris.Wrap(err, "borrowers: marshal positions")
	}
	fmt.Println(string(out))
	return nil
}
