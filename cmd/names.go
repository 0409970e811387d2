package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearlend/docmatch/internal/match"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Match person names and name lists",
}

var namesListsCmd = &cobra.Command{
	Use:   "lists <list1> <list2>",
	Short: "Check one-to-one correspondence between two comma-separated name lists",
	Long: `Checks whether two comma-separated name lists can be put in
one-to-one correspondence under name matching and prints true or false.
The greedy strategy takes the first available partner per name; the
optimal strategy finds a complete assignment whenever one exists.

Examples:
  names lists "Jane Doe, John Smith" "John Smith, Jane Doe"
  names lists "John, John Smith" "John Smith, John Carter" --strategy optimal`,
	Args: cobra.ExactArgs(2),
	RunE: runNamesLists,
}

func init() {
	namesListsCmd.Flags().String("strategy", "", "greedy or optimal (default from config)")

	namesCmd.AddCommand(namesListsCmd)
	rootCmd.AddCommand(namesCmd)
}

func runNamesLists(cmd *cobra.Command, args []string) error {
	strategy := flagOrConfig(cmd, "strategy", cfg.Match.NameListStrategy)

	matched, err := matchListsByStrategy(strategy, splitNames(args[0]), splitNames(args[1]))
	if err != nil {
		return err
	}
	fmt.Println(matched)
	return nil
}

// matchListsByStrategy dispatches on the configured assignment strategy.
func matchListsByStrategy(strategy string, l1, l2 []string) (bool, error) {
	s := match.AssignmentStrategy(strategy)
	switch s {
	case match.StrategyGreedy, match.StrategyOptimal:
		return match.MatchNameLists(l1, l2, s), nil
	default:
		return false, eris.Errorf("names: --strategy must be greedy or optimal (got %q)", strategy)
	}
}

// splitNames splits a comma-separated list, dropping blanks.
func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
