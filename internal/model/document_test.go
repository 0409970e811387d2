package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasData(t *testing.T) {
	assert.False(t, (&DocumentRecord{}).HasData())
	assert.True(t, (&DocumentRecord{Data: json.RawMessage(`{}`)}).HasData())
}

func TestDocumentRecordJSON(t *testing.T) {
	d := &DocumentRecord{
		ID:       "doc-1",
		Filename: "note.json",
		Folder:   "notes",
		Status:   StatusDuplicate,
	}

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"duplicate"`)
	assert.Contains(t, string(out), `"filename":"note.json"`)
	// Raw extraction data and a blank error stay out of the encoding.
	assert.NotContains(t, string(out), `"data"`)
	assert.NotContains(t, string(out), `"error_message"`)
}
