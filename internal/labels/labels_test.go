package labels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notePayload = json.RawMessage(`{
	"Summary": [
		{
			"SkillName": "Note Extraction",
			"Labels": [
				{"LabelName": "Loan Number", "Values": [{"Value": "  L-100 "}]},
				{"LabelName": "Signature", "Values": [{"Value": "n/a"}, {"Value": "yes"}]},
				{"LabelName": "Property Address", "Values": [{"Value": "123 Main St"}]},
				{"LabelName": "Property City", "Values": [{"Value": "Springfield"}]},
				{"LabelName": "Property State", "Values": [{"Value": "IL"}]},
				{"LabelName": "Property Zip Code", "Values": [{"Value": "62701"}]},
				{
					"LabelName": "Borrowers",
					"Values": [],
					"Groups": [
						{"RecordLabels": [{"LabelName": "Borrower Name", "Values": [{"Value": "Jane Doe"}]}]},
						{"RecordLabels": [{"LabelName": "Borrower Name", "Values": [{"Value": "John Public"}]}]}
					]
				},
				{
					"LabelName": "Servicing",
					"Values": [],
					"ChildLabels": [
						{"LabelName": "Servicer Name", "Values": [{"Value": "Acme Servicing"}]}
					]
				}
			]
		},
		{
			"SkillName": "Deed Extraction",
			"Labels": [
				{"LabelName": "Property Address", "Values": [{"Value": "123 Main St Springfield IL 62701"}]}
			]
		}
	]
}`)

func parseNote(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(notePayload)
	require.NoError(t, err)
	return doc
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(json.RawMessage(`{"Summary": "not a list"}`))
	assert.Error(t, err)
}

func TestFirst(t *testing.T) {
	doc := parseNote(t)

	assert.Equal(t, "L-100", doc.First("Note Extraction", "Loan Number"))
	// Placeholder values are skipped, not returned.
	assert.Equal(t, "yes", doc.First("Note Extraction", "Signature"))
	// Lookups are case-insensitive on both skill and label names.
	assert.Equal(t, "L-100", doc.First("note extraction", "loan number"))
	assert.Empty(t, doc.First("Note Extraction", "Maturity Date"))
	assert.Empty(t, doc.First("Unknown Skill", "Loan Number"))
}

func TestFirstSearchesGroupsAndChildren(t *testing.T) {
	doc := parseNote(t)

	assert.Equal(t, "Jane Doe", doc.First("Note Extraction", "Borrower Name"))
	assert.Equal(t, "Acme Servicing", doc.First("Note Extraction", "Servicer Name"))
}

func TestAll(t *testing.T) {
	doc := parseNote(t)

	assert.Equal(t, []string{"Jane Doe", "John Public"}, doc.All("Note Extraction", "Borrower Name"))
	assert.Nil(t, doc.All("Note Extraction", "Maturity Date"))
}

func TestNested(t *testing.T) {
	doc := parseNote(t)

	assert.Equal(t, "Acme Servicing", doc.Nested("Note Extraction", "Servicing", "Servicer Name"))
	assert.Empty(t, doc.Nested("Note Extraction", "Servicing", "Servicer Phone"))
	assert.Empty(t, doc.Nested("Note Extraction", "Borrowers", "Servicer Name"))
}

func TestPropertyAddress(t *testing.T) {
	doc := parseNote(t)

	// Note skills carry the address in separate labels.
	assert.Equal(t, "123 Main St Springfield IL 62701", doc.PropertyAddress("Note Extraction"))
	// Other skills carry it whole.
	assert.Equal(t, "123 Main St Springfield IL 62701", doc.PropertyAddress("Deed Extraction"))
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "a b c", Flatten([]string{" a ", "", "b", "n/a", "c"}))
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Flatten([]string{"", "N/A"}))
}
