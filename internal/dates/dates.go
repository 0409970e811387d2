package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// layouts are tried in order; the first that parses wins. Month-first
// forms come before day-first so ambiguous dates resolve the US way.
var layouts = []string{
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
	"2/1/06",
	"2006-01-02",
}

// monthLayouts cover spelled-out forms like "August 2022" or "April 5, 2024".
var monthLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"January 2006",
	"Jan 2006",
}

var ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)

// Parse interprets a free-text date from an extraction feed. Empty values
// and "n/a" are not dates; unrecognized input logs a warning and reports
// false rather than surfacing an error.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "n/a") {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	zap.L().Warn("unrecognized date", zap.String("value", s))
	return time.Time{}, false
}

// Standardize renders a date in M/D/YY form. Dashes are accepted as
// separators and ordinal suffixes (1st, 22nd) are dropped before parsing.
// Returns "" when the input cannot be interpreted.
func Standardize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "n/a") {
		return ""
	}

	s = ordinalPattern.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "-", "/")

	t, ok := Parse(s)
	if !ok {
		for _, layout := range monthLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t, ok = parsed, true
				break
			}
		}
	}
	if !ok {
		return ""
	}

	return strconv.Itoa(int(t.Month())) + "/" + strconv.Itoa(t.Day()) + "/" + t.Format("06")
}
