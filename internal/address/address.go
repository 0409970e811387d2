// Package address normalizes free-text US street addresses into tagged
// USPS-style components for fuzzy comparison. Normalization is total:
// input that cannot be tagged falls back to the raw string instead of an
// error.
package address

import (
	"regexp"
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"
)

// DefaultThreshold is the similarity floor used by field-aware string
// comparison when matching addresses.
const DefaultThreshold = 85

// Components holds the tagged fields of a parsed street address. State,
// street type and directions are canonicalized to USPS abbreviations;
// every field is independently optional.
type Components struct {
	Number        string `json:"number,omitempty"`
	PreDirection  string `json:"pre_direction,omitempty"`
	StreetName    string `json:"street_name,omitempty"`
	StreetType    string `json:"street_type,omitempty"`
	PostDirection string `json:"post_direction,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
}

// ParseResult is either a parsed component set or the raw input when
// tagging failed. The raw branch keeps callers total: they compare the
// original string verbatim instead of handling an error.
type ParseResult struct {
	Components *Components `json:"components,omitempty"`
	Raw        string      `json:"raw,omitempty"`
}

// Parsed reports whether tagging succeeded.
func (r ParseResult) Parsed() bool { return r.Components != nil }

// String renders the comparable form: non-empty components joined by
// spaces in fixed order, or the raw input verbatim.
func (r ParseResult) String() string {
	if r.Components == nil {
		return r.Raw
	}
	c := r.Components
	parts := make([]string, 0, 8)
	for _, v := range []string{
		c.Number, c.PreDirection, c.StreetName, c.StreetType,
		c.PostDirection, c.City, c.State, c.Zip,
	} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Normalize parses an address into tagged components and canonicalizes
// state, street-type and direction words. Unrecognized tokens pass
// through unchanged.
func Normalize(addr string) ParseResult {
	c, ok := parse(addr)
	if !ok {
		return ParseResult{Raw: addr}
	}
	return ParseResult{Components: c}
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// parse tags tokens positionally: building number first, zip and state
// popped from the tail, the last street-type token splitting street from
// city. Returns false when no leading number or street name is found.
func parse(addr string) (*Components, bool) {
	tokens := strings.Fields(strings.ReplaceAll(addr, ",", " "))
	if len(tokens) == 0 {
		return nil, false
	}

	first, _ := utfFirstRune(tokens[0])
	if !unicode.IsDigit(first) {
		return nil, false
	}

	c := &Components{Number: tokens[0]}
	rest := tokens[1:]

	// Zip from the tail.
	if n := len(rest); n > 0 && zipPattern.MatchString(rest[n-1]) {
		c.Zip = rest[n-1]
		rest = rest[:n-1]
	}

	// State from the tail; two-word names first. A trailing token that is
	// also a street-type word ("Ct", "Wy") only counts as a state when a
	// zip anchored the tail.
	if n := len(rest); n >= 3 {
		if st, ok := states[strings.ToLower(rest[n-2]+" "+rest[n-1])]; ok {
			c.State = st
			rest = rest[:n-2]
		}
	}
	if c.State == "" {
		if n := len(rest); n >= 2 {
			tail := strings.ToLower(rest[n-1])
			_, ambiguous := streetTypes[tail]
			if st, ok := states[tail]; ok && (c.Zip != "" || !ambiguous) {
				c.State = st
				rest = rest[:n-1]
			}
		}
	}

	if len(rest) == 0 {
		return nil, false
	}

	// Leading direction before the street name.
	if len(rest) > 1 {
		if dir, ok := directions[strings.ToLower(rest[0])]; ok {
			c.PreDirection = dir
			rest = rest[1:]
		}
	}

	// The last street-type token splits street name from city.
	typeIdx := -1
	for i := len(rest) - 1; i > 0; i-- {
		if _, ok := streetTypes[strings.ToLower(rest[i])]; ok {
			typeIdx = i
			break
		}
	}

	if typeIdx > 0 {
		c.StreetName = strings.Join(rest[:typeIdx], " ")
		c.StreetType = streetTypes[strings.ToLower(rest[typeIdx])]
		tail := rest[typeIdx+1:]
		if len(tail) > 0 {
			if dir, ok := directions[strings.ToLower(tail[0])]; ok {
				c.PostDirection = dir
				tail = tail[1:]
			}
		}
		c.City = strings.Join(tail, " ")
	} else {
		c.StreetName = strings.Join(rest, " ")
	}

	if c.StreetName == "" {
		return nil, false
	}
	return c, true
}

func utfFirstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// FuzzyMatch reports whether two free-text addresses denote the same
// place. Both sides are normalized and stringified, then scored with
// plain, token-sort and token-set ratios; the best score must reach the
// threshold. Empty input yields false, never an error.
func FuzzyMatch(a, b string, threshold int) bool {
	s1 := Normalize(a).String()
	s2 := Normalize(b).String()
	if s1 == "" || s2 == "" {
		return false
	}

	ratio := fuzzy.Ratio(s1, s2)
	tokenSort := fuzzy.TokenSortRatio(s1, s2)
	tokenSet := fuzzy.TokenSetRatio(s1, s2)

	best := ratio
	if tokenSort > best {
		best = tokenSort
	}
	if tokenSet > best {
		best = tokenSet
	}

	zap.L().Debug("address fuzzy match",
		zap.String("a", s1),
		zap.String("b", s2),
		zap.Int("ratio", ratio),
		zap.Int("token_sort", tokenSort),
		zap.Int("token_set", tokenSet),
	)

	return best >= threshold
}

var poBoxPattern = regexp.MustCompile(`(?i)^p\.?\s*o\.?\s*box\s+(\w+)`)

// StreetOnly extracts the street-level portion of an address: number,
// directions, name and type for street addresses, the box designation for
// PO boxes, and the input verbatim when tagging fails.
func StreetOnly(addr string) string {
	if m := poBoxPattern.FindStringSubmatch(strings.TrimSpace(addr)); m != nil {
		return "PO Box " + m[1]
	}

	r := Normalize(addr)
	if !r.Parsed() {
		return addr
	}

	c := r.Components
	parts := make([]string, 0, 5)
	for _, v := range []string{c.Number, c.PreDirection, c.StreetName, c.StreetType, c.PostDirection} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return addr
	}
	return strings.Join(parts, " ")
}
