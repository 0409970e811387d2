// Package dedup labels document records as originals or duplicates.
// Records are grouped by an extracted key and each group is resolved by
// a pluggable strategy; extraction failures poison only the records they
// touch, never the whole feed.
package dedup

import (
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/clearlend/docmatch/internal/dates"
	"github.com/clearlend/docmatch/internal/model"
)

// Strategy selects how a key group is resolved to a single original.
type Strategy string

const (
	// StrategyAllOriginal marks every record original. Used for document
	// categories where repeats are legitimate (e.g. periodic statements).
	StrategyAllOriginal Strategy = "all-original"
	// StrategyFilename keeps the first record per key in filename order.
	StrategyFilename Strategy = "filename"
	// StrategySignature keeps the first signed record in filename order,
	// falling back to filename order when nothing in the group is signed.
	StrategySignature Strategy = "signature"
	// StrategyPreferred keeps the first record whose filename contains a
	// preferred substring, falling back to filename order.
	StrategyPreferred Strategy = "preferred"
	// StrategySignatureDate ranks records by signature evidence: signed
	// and dated beats signed-only beats unsigned.
	StrategySignatureDate Strategy = "signature-date"
)

// KeyFunc extracts the grouping key from a record, e.g. a loan number.
type KeyFunc func(*model.DocumentRecord) (string, error)

// SignatureFunc reports whether a record shows a valid signature.
type SignatureFunc func(*model.DocumentRecord) bool

// SignatureDateFunc extracts the raw signature date text from a record.
type SignatureDateFunc func(*model.DocumentRecord) string

// PreferFunc reports whether a record is preferred under StrategyPreferred.
type PreferFunc func(*model.DocumentRecord) bool

// Engine labels groups of records that share an extracted key.
type Engine struct {
	strategy      Strategy
	key           KeyFunc
	signature     SignatureFunc
	signatureDate SignatureDateFunc
	prefer        PreferFunc
	log           *zap.Logger
}

// New builds an engine for the given strategy and key extractor.
func New(strategy Strategy, key KeyFunc) *Engine {
	return &Engine{strategy: strategy, key: key, log: zap.L()}
}

// WithLogger replaces the engine's logger (defaults to the global one).
func (e *Engine) WithLogger(log *zap.Logger) *Engine {
	e.log = log
	return e
}

// WithSignature sets the signature extractor used by StrategySignatureDate.
func (e *Engine) WithSignature(fn SignatureFunc) *Engine {
	e.signature = fn
	return e
}

// WithSignatureDate sets the signature-date extractor used by
// StrategySignatureDate.
func (e *Engine) WithSignatureDate(fn SignatureDateFunc) *Engine {
	e.signatureDate = fn
	return e
}

// WithPrefer sets the preference predicate used by StrategyPreferred.
func (e *Engine) WithPrefer(fn PreferFunc) *Engine {
	e.prefer = fn
	return e
}

// validSignatures are the extracted values accepted as a real signature,
// compared case-insensitively.
var validSignatures = map[string]struct{}{
	"yes":    {},
	"signed": {},
	"true":   {},
}

// ValidSignature reports whether an extracted signature value counts as
// signed.
func ValidSignature(v string) bool {
	_, ok := validSignatures[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Label partitions records by key and marks one original per group, the
// rest duplicates. Records already in error or without extracted data
// are passed over. Key extraction failures mark only the failing record;
// a panic inside a group's extractors marks that whole group as errored
// and the remaining groups are still resolved.
func (e *Engine) Label(docs []*model.DocumentRecord) {
	if e.strategy == StrategyAllOriginal {
		for _, d := range docs {
			if d.Status == model.StatusError || !d.HasData() {
				continue
			}
			d.Status = model.StatusOriginal
		}
		return
	}

	groups := make(map[string][]*model.DocumentRecord)
	var keys []string
	for _, d := range docs {
		if d.Status == model.StatusError || !d.HasData() {
			continue
		}
		key, err := e.key(d)
		if err != nil {
			d.Status = model.StatusError
			d.ErrorMessage = "key extraction error: " + err.Error()
			e.log.Warn("dedup key extraction failed",
				zap.String("filename", d.Filename),
				zap.Error(err),
			)
			continue
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], d)
	}

	sort.Strings(keys)
	for _, key := range keys {
		if err := e.labelGroup(groups[key]); err != nil {
			for _, d := range groups[key] {
				d.Status = model.StatusError
				d.ErrorMessage = "deduplication error: " + err.Error()
			}
			e.log.Error("dedup group failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

// labelGroup resolves one key group. Extractor callbacks run arbitrary
// caller code over extracted data, so panics are converted to an error
// for the group instead of unwinding the whole labeling pass.
func (e *Engine) labelGroup(group []*model.DocumentRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("extractor panic: %v", r)
		}
	}()

	switch e.strategy {
	case StrategySignatureDate:
		e.labelByEvidence(group)
	case StrategySignature:
		e.labelBySignature(group)
	case StrategyPreferred:
		e.labelPreferFirst(group)
	default:
		labelFilenameOrder(group)
	}
	return nil
}

// labelBySignature keeps the first signed record in filename order. Groups
// with no signed record fall back to plain filename order.
func (e *Engine) labelBySignature(group []*model.DocumentRecord) {
	var signed, unsigned []*model.DocumentRecord
	for _, d := range group {
		if e.signature != nil && e.signature(d) {
			signed = append(signed, d)
		} else {
			unsigned = append(unsigned, d)
		}
	}
	sortByFilename(signed)
	sortByFilename(unsigned)

	ranked := append(signed, unsigned...)
	for i, d := range ranked {
		if i == 0 {
			d.Status = model.StatusOriginal
		} else {
			d.Status = model.StatusDuplicate
		}
	}
}

// labelByEvidence ranks a group by signature evidence. Signed records
// with a parseable date win, newest date first; then signed records
// without a date; unsigned records lose. Ties inside a bucket break by
// filename.
func (e *Engine) labelByEvidence(group []*model.DocumentRecord) {
	type dated struct {
		doc  *model.DocumentRecord
		when time.Time
	}

	var withDate []dated
	var signedOnly, unsigned []*model.DocumentRecord

	for _, d := range group {
		signed := e.signature != nil && e.signature(d)
		if !signed {
			unsigned = append(unsigned, d)
			continue
		}
		var raw string
		if e.signatureDate != nil {
			raw = e.signatureDate(d)
		}
		if when, ok := dates.Parse(raw); ok {
			withDate = append(withDate, dated{doc: d, when: when})
		} else {
			// A signature date that will not parse demotes the record to
			// signed-only rather than failing the group.
			signedOnly = append(signedOnly, d)
		}
	}

	sort.SliceStable(withDate, func(i, j int) bool {
		if !withDate[i].when.Equal(withDate[j].when) {
			return withDate[i].when.After(withDate[j].when)
		}
		return withDate[i].doc.Filename < withDate[j].doc.Filename
	})
	sortByFilename(signedOnly)
	sortByFilename(unsigned)

	ranked := make([]*model.DocumentRecord, 0, len(group))
	for _, d := range withDate {
		ranked = append(ranked, d.doc)
	}
	ranked = append(ranked, signedOnly...)
	ranked = append(ranked, unsigned...)

	for i, d := range ranked {
		if i == 0 {
			d.Status = model.StatusOriginal
		} else {
			d.Status = model.StatusDuplicate
		}
	}
}

// labelPreferFirst keeps the first preferred record, falling back to
// filename order when nothing in the group is preferred.
func (e *Engine) labelPreferFirst(group []*model.DocumentRecord) {
	sortByFilename(group)

	original := -1
	if e.prefer != nil {
		for i, d := range group {
			if e.prefer(d) {
				original = i
				break
			}
		}
	}
	if original == -1 {
		original = 0
	}

	for i, d := range group {
		if i == original {
			d.Status = model.StatusOriginal
		} else {
			d.Status = model.StatusDuplicate
		}
	}
}

// labelFilenameOrder keeps the lexicographically smallest filename.
func labelFilenameOrder(group []*model.DocumentRecord) {
	sortByFilename(group)
	for i, d := range group {
		if i == 0 {
			d.Status = model.StatusOriginal
		} else {
			d.Status = model.StatusDuplicate
		}
	}
}

func sortByFilename(docs []*model.DocumentRecord) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Filename < docs[j].Filename
	})
}
