package model

import "encoding/json"

// Status is the deduplication label assigned to a document.
type Status string

const (
	StatusOriginal  Status = "original"
	StatusDuplicate Status = "duplicate"
	StatusError     Status = "error"
)

// DocumentRecord is one extraction-feed document moving through a
// deduplication pass. Data is the raw extraction payload; the dedup engine
// treats it as opaque and derives keys and signature evidence only through
// caller-supplied extractor funcs. The engine writes Status (and
// ErrorMessage on failure) exactly once per pass and never drops or
// persists records.
type DocumentRecord struct {
	ID           string          `json:"id"`
	Filename     string          `json:"filename"`
	Folder       string          `json:"folder,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	Status       Status          `json:"status,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// HasData reports whether the record carries an extraction payload.
// Records without one are excluded from grouping and left unlabeled.
func (d *DocumentRecord) HasData() bool {
	return len(d.Data) > 0
}
