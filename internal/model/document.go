package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRecord marks backend rows that cannot be parsed into a valid
// Document. Callers detect it with errors.Is and fail fast instead of letting
// untyped data travel inward.
var ErrMalformedRecord = errors.New("malformed document record")

// Document represents one uploaded file's metadata.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, collection, projection) without coupling
// to persistence.
type Document struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MimeType    string     `json:"mime_type"`
	SizeBytes   int64      `json:"size_bytes"`
	BlobKey     string     `json:"blob_key"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	OwnerID     string     `json:"owner_id"`
}

// Record is the loosely typed shape a backend row arrives in. Optional fields
// are pointers; everything else may be empty and is validated by ParseRecord.
type Record struct {
	ID          string
	Name        string
	MimeType    string
	SizeBytes   int64
	BlobKey     string
	Description *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	OwnerID     string
}

// ParseRecord validates a loose backend record into a strict Document.
// A record without an id, without a name, or with a negative size is rejected
// with ErrMalformedRecord.
func ParseRecord(rec Record) (*Document, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("%w: document %s has no name", ErrMalformedRecord, rec.ID)
	}
	if rec.SizeBytes < 0 {
		return nil, fmt.Errorf("%w: document %s has negative size %d", ErrMalformedRecord, rec.ID, rec.SizeBytes)
	}

	doc := &Document{
		ID:        rec.ID,
		Name:      rec.Name,
		MimeType:  rec.MimeType,
		SizeBytes: rec.SizeBytes,
		BlobKey:   rec.BlobKey,
		OwnerID:   rec.OwnerID,
	}
	if rec.Description != nil {
		doc.Description = *rec.Description
	}
	if rec.CreatedAt != nil {
		doc.CreatedAt = *rec.CreatedAt
	}
	if rec.UpdatedAt != nil {
		t := *rec.UpdatedAt
		doc.UpdatedAt = &t
	}
	return doc, nil
}
