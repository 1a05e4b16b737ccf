// Package remote persists the directory as a single JSON document in a
// key/value blob store. The core only sees the core.Syncer interface.
package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// DocumentVersion is written into every pushed document.
const DocumentVersion = "1.0"

// Document is the stored shape of the directory.
type Document struct {
	Lawyers  []core.Record `json:"lawyers"`
	Metadata Metadata      `json:"metadata"`
}

// Metadata describes a pushed document.
type Metadata struct {
	LastUpdated time.Time `json:"lastUpdated"`
	TotalCount  int       `json:"totalCount"`
	Version     string    `json:"version"`
}

// NewDocument wraps records with fresh metadata.
func NewDocument(records []core.Record, now time.Time) Document {
	if records == nil {
		records = []core.Record{}
	}
	return Document{
		Lawyers: records,
		Metadata: Metadata{
			LastUpdated: now.UTC(),
			TotalCount:  len(records),
			Version:     DocumentVersion,
		},
	}
}

// Encode serializes a document as indented JSON.
func Encode(doc Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// Decode parses a stored document. A bare JSON array of records is accepted
// for documents written before metadata was added.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return Document{
		Lawyers:  records,
		Metadata: Metadata{TotalCount: len(records)},
	}, nil
}
