// Package ingest loads extracted-document JSON files from disk into
// records. Unreadable or malformed files become errored records rather
// than aborting the load.
package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/clearlend/docmatch/internal/model"
)

// LoadDir reads every .json file in dir into a record. Files that fail
// to read or are not valid JSON come back as errored records with the
// cause in ErrorMessage. Records are sorted by filename.
func LoadDir(dir string) ([]*model.DocumentRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read directory")
	}

	folder := filepath.Base(dir)
	var docs []*model.DocumentRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		doc := &model.DocumentRecord{
			ID:       uuid.NewString(),
			Filename: entry.Name(),
			Folder:   folder,
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			doc.Status = model.StatusError
			doc.ErrorMessage = "read error: " + err.Error()
			zap.L().Warn("document read failed",
				zap.String("filename", entry.Name()),
				zap.Error(err),
			)
		} else if !json.Valid(data) {
			doc.Status = model.StatusError
			doc.ErrorMessage = "invalid JSON"
			zap.L().Warn("document is not valid JSON",
				zap.String("filename", entry.Name()),
			)
		} else {
			doc.Data = json.RawMessage(data)
		}

		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })

	zap.L().Info("loaded documents",
		zap.String("dir", dir),
		zap.Int("count", len(docs)),
	)
	return docs, nil
}

// Subdirs lists the immediate subdirectories of dir, sorted by name.
// A feed laid out as one directory per document category walks these.
func Subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read directory")
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(subdirs)
	return subdirs, nil
}
