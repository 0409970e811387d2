package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// tokenRatioThreshold is the per-token partner floor in LooseMatch.
const tokenRatioThreshold = 85

// AssignmentStrategy selects how MatchNameLists pairs names up.
type AssignmentStrategy string

const (
	// StrategyGreedy takes the first available partner for each name. It
	// can reject a valid pairing when near-duplicate names compete for
	// the same partner; kept as the default because existing behavior
	// depends on it.
	StrategyGreedy AssignmentStrategy = "greedy"
	// StrategyOptimal finds a complete one-to-one assignment whenever
	// one exists, via augmenting paths.
	StrategyOptimal AssignmentStrategy = "optimal"
)

// Tokens splits a name into its set of lowercase alphanumeric tokens.
func Tokens(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(Normalize(name)) {
		set[tok] = struct{}{}
	}
	return set
}

// LooseMatch compares person names at the token level. Identical or
// subset token sets match outright (missing middle names, initials);
// otherwise every token of the smaller set must find a fuzzy partner in
// the other set.
func LooseMatch(a, b string) bool {
	t1 := Tokens(a)
	t2 := Tokens(b)

	if isSubset(t1, t2) || isSubset(t2, t1) {
		return true
	}

	matched := 0
	for tok1 := range t1 {
		for tok2 := range t2 {
			if fuzzy.Ratio(tok1, tok2) >= tokenRatioThreshold {
				matched++
				break
			}
		}
	}

	smaller := len(t1)
	if len(t2) < smaller {
		smaller = len(t2)
	}
	return matched >= smaller
}

// isSubset reports whether every token of a is in b. Covers equality too.
func isSubset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for tok := range a {
		if _, ok := b[tok]; !ok {
			return false
		}
	}
	return true
}

// MatchNameLists reports whether two equal-length name lists can be put
// in one-to-one correspondence under name-profile matching.
func MatchNameLists(l1, l2 []string, strategy AssignmentStrategy) bool {
	if len(l1) != len(l2) {
		return false
	}
	if len(l1) == 0 {
		return true
	}
	if strategy == StrategyOptimal {
		return matchOptimal(l1, l2)
	}
	return matchGreedy(l1, l2)
}

// matchGreedy assigns each name the first unused partner it matches.
func matchGreedy(l1, l2 []string) bool {
	used := make([]bool, len(l2))
	for _, name1 := range l1 {
		found := false
		for i, name2 := range l2 {
			if used[i] {
				continue
			}
			if SafeStringCompare(name1, name2, FieldName) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchOptimal is Kuhn's augmenting-path bipartite matching: it accepts
// any list pair for which a complete assignment exists, at the cost of
// re-scoring pairs the greedy pass would skip.
func matchOptimal(l1, l2 []string) bool {
	adj := make([][]int, len(l1))
	for i, name1 := range l1 {
		for j, name2 := range l2 {
			if SafeStringCompare(name1, name2, FieldName) {
				adj[i] = append(adj[i], j)
			}
		}
	}

	matchTo := make([]int, len(l2))
	for i := range matchTo {
		matchTo[i] = -1
	}

	var augment func(i int, seen []bool) bool
	augment = func(i int, seen []bool) bool {
		for _, j := range adj[i] {
			if seen[j] {
				continue
			}
			seen[j] = true
			if matchTo[j] == -1 || augment(matchTo[j], seen) {
				matchTo[j] = i
				return true
			}
		}
		return false
	}

	for i := range l1 {
		if !augment(i, make([]bool, len(l2))) {
			return false
		}
	}
	return true
}
