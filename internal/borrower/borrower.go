// Package borrower maps document borrower names onto the canonical
// co-borrower positions of a note.
package borrower

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/clearlend/docmatch/internal/match"
)

// MaxPositions is the canonical co-borrower slot count on a note.
const MaxPositions = 4

var (
	foldAccents      = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z ]`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// NormalizeName folds accents to ASCII, drops non-letter characters,
// collapses spaces and lowercases.
func NormalizeName(name string) string {
	if folded, _, err := transform.String(foldAccents, name); err == nil {
		name = folded
	}
	name = nonLetterPattern.ReplaceAllString(name, "")
	name = spacePattern.ReplaceAllString(name, " ")
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeAll filters blanks out of a raw name list and normalizes the rest.
func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if cleaned := NormalizeName(n); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// IdentifyBorrowers maps document borrower names onto canonical note
// positions. Each position with a non-empty canonical name is tested
// against every document name; the first hit claims the position and
// stops the scan for that position. Returns sorted position labels.
func IdentifyBorrowers(docBorrowers []string, canonical map[int]string) []string {
	docNames := normalizeAll(docBorrowers)
	if len(docNames) == 0 {
		return nil
	}

	var positions []string
	for pos, name := range canonical {
		noteName := NormalizeName(name)
		if noteName == "" {
			continue
		}
		for _, docName := range docNames {
			if match.SafeStringCompare(docName, noteName, match.FieldName) {
				zap.L().Debug("borrower position matched",
					zap.Int("position", pos),
					zap.String("doc_name", docName),
				)
				positions = append(positions, strconv.Itoa(pos))
				break
			}
		}
	}

	sort.Strings(positions)
	return positions
}

// IdentifyMatchingBorrower returns the first canonical position (scanned
// 1..MaxPositions) that matches any document borrower name.
func IdentifyMatchingBorrower(docBorrowers []string, canonical map[int]string) (int, bool) {
	docNames := normalizeAll(docBorrowers)
	if len(docNames) == 0 {
		return 0, false
	}

	for pos := 1; pos <= MaxPositions; pos++ {
		noteName := NormalizeName(canonical[pos])
		if noteName == "" {
			continue
		}
		for _, docName := range docNames {
			if match.SafeStringCompare(docName, noteName, match.FieldName) {
				return pos, true
			}
		}
	}
	return 0, false
}

// MatchAnyBorrower reports whether at least one document borrower matches
// at least one note borrower. This existential form is the authoritative
// variant; MatchAllBorrowers is the strict legacy one.
func MatchAnyBorrower(docNames, noteNames []string) bool {
	docs := normalizeAll(docNames)
	notes := normalizeAll(noteNames)
	if len(docs) == 0 || len(notes) == 0 {
		return false
	}

	for _, d := range docs {
		for _, n := range notes {
			if match.SafeStringCompare(d, n, match.FieldName) {
				return true
			}
		}
	}
	return false
}

// MatchAllBorrowers requires every document borrower to match some note
// borrower.
func MatchAllBorrowers(docNames, noteNames []string) bool {
	docs := normalizeAll(docNames)
	notes := normalizeAll(noteNames)
	if len(docs) == 0 || len(notes) == 0 {
		return false
	}

	for _, d := range docs {
		found := false
		for _, n := range notes {
			if match.SafeStringCompare(d, n, match.FieldName) {
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

// ListsEqual reports whether two borrower lists contain the same
// normalized names regardless of order.
func ListsEqual(l1, l2 []string) bool {
	set1 := make(map[string]struct{})
	for _, n := range normalizeAll(l1) {
		set1[n] = struct{}{}
	}
	set2 := make(map[string]struct{})
	for _, n := range normalizeAll(l2) {
		set2[n] = struct{}{}
	}

	if len(set1) != len(set2) {
		return false
	}
	for n := range set1 {
		if _, ok := set2[n]; !ok {
			return false
		}
	}
	return true
}
