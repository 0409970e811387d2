package dedup

import (
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlend/docmatch/internal/model"
)

type fixture struct {
	Key       string `json:"key"`
	Signature string `json:"signature"`
	Date      string `json:"date"`
}

func record(filename string, f fixture) *model.DocumentRecord {
	data, _ := json.Marshal(f)
	return &model.DocumentRecord{
		ID:       filename,
		Filename: filename,
		Folder:   "notes",
		Data:     data,
	}
}

func decode(t *testing.T, d *model.DocumentRecord) fixture {
	t.Helper()
	var f fixture
	require.NoError(t, json.Unmarshal(d.Data, &f))
	return f
}

func testEngine(t *testing.T, strategy Strategy) *Engine {
	t.Helper()
	return New(strategy, func(d *model.DocumentRecord) (string, error) {
		return decode(t, d).Key, nil
	}).WithSignature(func(d *model.DocumentRecord) bool {
		return ValidSignature(decode(t, d).Signature)
	}).WithSignatureDate(func(d *model.DocumentRecord) string {
		return decode(t, d).Date
	})
}

func TestValidSignature(t *testing.T) {
	assert.True(t, ValidSignature("yes"))
	assert.True(t, ValidSignature(" Signed "))
	assert.True(t, ValidSignature("TRUE"))
	assert.False(t, ValidSignature("no"))
	assert.False(t, ValidSignature(""))
	assert.False(t, ValidSignature("n/a"))
}

func TestLabelSignatureDateRanking(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100", Signature: "yes", Date: "3/1/2024"})
	b := record("b.json", fixture{Key: "L-100", Signature: "yes", Date: "3/15/2024"})
	c := record("c.json", fixture{Key: "L-100", Signature: "no"})

	testEngine(t, StrategySignatureDate).Label([]*model.DocumentRecord{a, b, c})

	// The newest signed-and-dated record wins the group.
	assert.Equal(t, model.StatusDuplicate, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
	assert.Equal(t, model.StatusDuplicate, c.Status)
}

func TestLabelSignedBeatsUnsigned(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100", Signature: "no"})
	b := record("b.json", fixture{Key: "L-100", Signature: "yes"})

	testEngine(t, StrategySignatureDate).Label([]*model.DocumentRecord{a, b})

	assert.Equal(t, model.StatusDuplicate, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
}

func TestLabelUnsignedTieBreaksByFilename(t *testing.T) {
	b := record("b.json", fixture{Key: "L-100", Signature: "no"})
	a := record("a.json", fixture{Key: "L-100", Signature: "no"})

	testEngine(t, StrategySignatureDate).Label([]*model.DocumentRecord{b, a})

	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusDuplicate, b.Status)
}

func TestLabelUnparseableDateDemotes(t *testing.T) {
	// An unreadable signature date drops the record behind any dated one,
	// even when its filename sorts first.
	a := record("a.json", fixture{Key: "L-100", Signature: "yes", Date: "sometime in spring"})
	b := record("b.json", fixture{Key: "L-100", Signature: "yes", Date: "1/1/2020"})

	testEngine(t, StrategySignatureDate).Label([]*model.DocumentRecord{a, b})

	assert.Equal(t, model.StatusDuplicate, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
}

func TestLabelSeparateKeysSeparateGroups(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100", Signature: "yes", Date: "3/1/2024"})
	b := record("b.json", fixture{Key: "L-200", Signature: "yes", Date: "3/1/2024"})

	testEngine(t, StrategySignatureDate).Label([]*model.DocumentRecord{a, b})

	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
}

func TestLabelKeyErrorIsolated(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100", Signature: "yes", Date: "3/1/2024"})
	b := record("b.json", fixture{Key: "L-100", Signature: "no"})
	bad := record("bad.json", fixture{})

	e := New(StrategySignatureDate, func(d *model.DocumentRecord) (string, error) {
		f := decode(t, d)
		if f.Key == "" {
			return "", eris.New("loan number missing")
		}
		return f.Key, nil
	}).WithSignature(func(d *model.DocumentRecord) bool {
		return ValidSignature(decode(t, d).Signature)
	}).WithSignatureDate(func(d *model.DocumentRecord) string {
		return decode(t, d).Date
	})

	e.Label([]*model.DocumentRecord{a, bad, b})

	assert.Equal(t, model.StatusError, bad.Status)
	assert.Contains(t, bad.ErrorMessage, "key extraction error")
	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusDuplicate, b.Status)
}

func TestLabelExtractorPanicFailsOnlyItsGroup(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100", Signature: "boom"})
	b := record("b.json", fixture{Key: "L-100", Signature: "yes"})
	c := record("c.json", fixture{Key: "L-200", Signature: "yes"})

	e := New(StrategySignatureDate, func(d *model.DocumentRecord) (string, error) {
		return decode(t, d).Key, nil
	}).WithSignature(func(d *model.DocumentRecord) bool {
		f := decode(t, d)
		if f.Signature == "boom" {
			panic("malformed payload")
		}
		return ValidSignature(f.Signature)
	}).WithSignatureDate(func(d *model.DocumentRecord) string {
		return decode(t, d).Date
	})

	e.Label([]*model.DocumentRecord{a, b, c})

	assert.Equal(t, model.StatusError, a.Status)
	assert.Equal(t, model.StatusError, b.Status)
	assert.Contains(t, a.ErrorMessage, "deduplication error")
	assert.Contains(t, a.ErrorMessage, "extractor panic")
	assert.Equal(t, model.StatusOriginal, c.Status)
}

func TestLabelSkipsErroredAndEmptyRecords(t *testing.T) {
	errored := &model.DocumentRecord{
		Filename:     "broken.json",
		Status:       model.StatusError,
		ErrorMessage: "invalid JSON",
		Data:         json.RawMessage(`{}`),
	}
	empty := &model.DocumentRecord{Filename: "empty.json"}
	good := record("good.json", fixture{Key: "L-100", Signature: "yes", Date: "3/1/2024"})

	testEngine(t, StrategySignatureDate).Label([]*model.DocumentRecord{errored, empty, good})

	assert.Equal(t, model.StatusError, errored.Status)
	assert.Equal(t, "invalid JSON", errored.ErrorMessage)
	assert.Empty(t, empty.Status)
	assert.Equal(t, model.StatusOriginal, good.Status)
}

func TestLabelAllOriginal(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100"})
	b := record("b.json", fixture{Key: "L-100"})
	empty := &model.DocumentRecord{Filename: "empty.json"}

	testEngine(t, StrategyAllOriginal).Label([]*model.DocumentRecord{a, b, empty})

	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
	assert.Empty(t, empty.Status)
}

func TestLabelFilenameOrder(t *testing.T) {
	b := record("b.json", fixture{Key: "L-100"})
	a := record("a.json", fixture{Key: "L-100"})

	testEngine(t, StrategyFilename).Label([]*model.DocumentRecord{b, a})

	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusDuplicate, b.Status)
}

func TestLabelSignatureStrategy(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100", Signature: "no"})
	b := record("b.json", fixture{Key: "L-100", Signature: "yes"})
	c := record("c.json", fixture{Key: "L-100", Signature: "yes"})

	testEngine(t, StrategySignature).Label([]*model.DocumentRecord{c, a, b})

	// First signed record by filename wins; dates are ignored.
	assert.Equal(t, model.StatusDuplicate, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
	assert.Equal(t, model.StatusDuplicate, c.Status)
}

func TestLabelSignatureStrategyAllUnsigned(t *testing.T) {
	b := record("b.json", fixture{Key: "L-100", Signature: "no"})
	a := record("a.json", fixture{Key: "L-100", Signature: "no"})

	testEngine(t, StrategySignature).Label([]*model.DocumentRecord{b, a})

	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusDuplicate, b.Status)
}

func TestLabelPreferred(t *testing.T) {
	a := record("a.json", fixture{Key: "L-100"})
	b := record("b_certified.json", fixture{Key: "L-100"})

	e := testEngine(t, StrategyPreferred).WithPrefer(func(d *model.DocumentRecord) bool {
		return d.Filename == "b_certified.json"
	})
	e.Label([]*model.DocumentRecord{a, b})

	assert.Equal(t, model.StatusDuplicate, a.Status)
	assert.Equal(t, model.StatusOriginal, b.Status)
}

func TestLabelPreferredFallsBackToFirst(t *testing.T) {
	b := record("b.json", fixture{Key: "L-100"})
	a := record("a.json", fixture{Key: "L-100"})

	e := testEngine(t, StrategyPreferred).WithPrefer(func(d *model.DocumentRecord) bool {
		return false
	})
	e.Label([]*model.DocumentRecord{b, a})

	assert.Equal(t, model.StatusOriginal, a.Status)
	assert.Equal(t, model.StatusDuplicate, b.Status)
}
