package borrower

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Jane Doe", "jane doe"},
		{"punctuation", "Jane A. Doe", "jane a doe"},
		{"accents", "José Núñez", "jose nunez"},
		{"digits and symbols", "John Smith Jr. #2", "john smith jr"},
		{"extra spaces", "  Jane   Doe  ", "jane doe"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestIdentifyBorrowersSinglePosition(t *testing.T) {
	got := IdentifyBorrowers(
		[]string{"Jane A. Doe"},
		map[int]string{1: "Jane Doe"},
	)
	assert.Equal(t, []string{"1"}, got)
}

func TestIdentifyBorrowersMultiplePositions(t *testing.T) {
	got := IdentifyBorrowers(
		[]string{"John Public", "Jane Doe"},
		map[int]string{1: "Jane Doe", 2: "John Q. Public"},
	)
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestIdentifyBorrowersNoMatch(t *testing.T) {
	got := IdentifyBorrowers(
		[]string{"Mary Jones"},
		map[int]string{1: "Jane Doe", 2: "John Public"},
	)
	assert.Empty(t, got)
}

func TestIdentifyBorrowersEmptyInputs(t *testing.T) {
	assert.Nil(t, IdentifyBorrowers(nil, map[int]string{1: "Jane Doe"}))
	assert.Nil(t, IdentifyBorrowers([]string{"", "  "}, map[int]string{1: "Jane Doe"}))
	assert.Empty(t, IdentifyBorrowers([]string{"Jane Doe"}, map[int]string{1: "", 2: "n/a"}))
}

func TestIdentifyMatchingBorrower(t *testing.T) {
	canonical := map[int]string{1: "", 2: "Jane Doe", 3: "John Public"}

	pos, ok := IdentifyMatchingBorrower([]string{"Jane A. Doe"}, canonical)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	pos, ok = IdentifyMatchingBorrower([]string{"Mary Jones"}, canonical)
	assert.False(t, ok)
	assert.Zero(t, pos)
}

func TestMatchAnyBorrower(t *testing.T) {
	assert.True(t, MatchAnyBorrower(
		[]string{"Mary Jones", "Jane Doe"},
		[]string{"John Public", "Jane Doe"},
	))
	assert.False(t, MatchAnyBorrower(
		[]string{"Mary Jones"},
		[]string{"John Public", "Jane Doe"},
	))
	assert.False(t, MatchAnyBorrower(nil, []string{"Jane Doe"}))
	assert.False(t, MatchAnyBorrower([]string{"Jane Doe"}, nil))
}

func TestMatchAllBorrowers(t *testing.T) {
	assert.True(t, MatchAllBorrowers(
		[]string{"Jane Doe", "John Public"},
		[]string{"John Q. Public", "Jane A. Doe"},
	))
	// One stranger on the document fails the strict variant.
	assert.False(t, MatchAllBorrowers(
		[]string{"Jane Doe", "Mary Jones"},
		[]string{"John Public", "Jane Doe"},
	))
}

func TestListsEqual(t *testing.T) {
	assert.True(t, ListsEqual(
		[]string{"Jane Doe", "John Public"},
		[]string{"John Public", "Jane Doe"},
	))
	assert.True(t, ListsEqual([]string{"JANE DOE."}, []string{"jane doe"}))
	assert.False(t, ListsEqual([]string{"Jane Doe"}, []string{"Jane Doe", "John Public"}))
	assert.False(t, ListsEqual([]string{"Jane Doe"}, []string{"Mary Jones"}))
	assert.True(t, ListsEqual(nil, []string{"", "  "}))
}
