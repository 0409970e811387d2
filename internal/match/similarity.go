// Package match scores pairs of free-text strings with multiple
// independent similarity metrics and renders field-aware match decisions.
// Metric disagreement is expected: edit-distance metrics punish token
// reordering while token metrics ignore character noise, so the decision
// is a majority vote, never a single metric.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/xrash/smetrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/clearlend/docmatch/internal/address"
)

// FieldType selects the threshold profile applied when scoring a pair.
type FieldType string

const (
	FieldName    FieldType = "name"
	FieldAddress FieldType = "address"
	FieldDefault FieldType = "default"
)

// Report carries the four similarity metrics for one comparison and the
// majority-vote decision over them.
type Report struct {
	FuzzRatio           int     `json:"fuzz_ratio"`
	JaroWinkler         float64 `json:"jaro_winkler"`
	LevenshteinDistance int     `json:"levenshtein_distance"`
	SequenceRatio       float64 `json:"sequence_ratio"`
	MatchDecision       bool    `json:"match_decision"`
}

// profile holds hand-tuned per-field thresholds.
type profile struct {
	ratio int
	jaro  float64
	lev   int
	seq   float64
}

var profiles = map[FieldType]profile{
	FieldName: {ratio: 85, jaro: 0.90, lev: 2, seq: 0.85},
	// Address thresholds run looser: abbreviation noise inflates edit counts.
	FieldAddress: {ratio: 80, jaro: 0.88, lev: 10, seq: 0.85},
	FieldDefault: {ratio: 85, jaro: 0.85, lev: 3, seq: 0.85},
}

var (
	punctPattern      = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	foldAccents       = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize folds accents to ASCII, lowercases, strips punctuation and
// collapses whitespace. Folding runs first: the punctuation pattern is
// ASCII-only and would otherwise eat accented letters whole.
func Normalize(s string) string {
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = punctPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Compare scores two strings with four independent metrics and renders a
// majority-vote decision: at least 3 of 4 must clear the field profile's
// thresholds.
func Compare(a, b string, ft FieldType) Report {
	p, ok := profiles[ft]
	if !ok {
		p = profiles[FieldDefault]
	}

	s1 := Normalize(a)
	s2 := Normalize(b)
	if s1 == "" || s2 == "" {
		// Nothing left to score after normalization; a vacuous pair is
		// a definite non-match.
		return Report{LevenshteinDistance: levenshtein.ComputeDistance(s1, s2)}
	}

	r := Report{
		FuzzRatio:           fuzzy.Ratio(s1, s2),
		JaroWinkler:         smetrics.JaroWinkler(s1, s2, 0.7, 4),
		LevenshteinDistance: levenshtein.ComputeDistance(s1, s2),
		SequenceRatio:       sequenceRatio(s1, s2),
	}

	votes := 0
	if r.FuzzRatio >= p.ratio {
		votes++
	}
	if r.JaroWinkler >= p.jaro {
		votes++
	}
	if r.LevenshteinDistance <= p.lev {
		votes++
	}
	if r.SequenceRatio >= p.seq {
		votes++
	}
	r.MatchDecision = votes >= 3

	return r
}

// sequenceRatio is difflib's longest-matching-block ratio over runes.
func sequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// SafeCompare guards against vacuous matches: empty input is a definite
// false, not an error.
func SafeCompare(a, b string, ft FieldType) bool {
	if a == "" || b == "" {
		return false
	}
	return Compare(a, b, ft).MatchDecision
}

// SafeStringCompare layers field-aware fallbacks over SafeCompare: loose
// token matching for names and component-normalized fuzzy matching for
// addresses. Either method succeeding is sufficient, because raw-string
// metrics alone miss reordered name tokens and abbreviation-heavy
// addresses.
func SafeStringCompare(a, b string, ft FieldType) bool {
	if a == "" || b == "" {
		return false
	}

	decision := Compare(a, b, ft).MatchDecision
	switch ft {
	case FieldName:
		return decision || LooseMatch(a, b)
	case FieldAddress:
		return decision || address.FuzzyMatch(a, b, address.DefaultThreshold)
	default:
		return decision
	}
}
