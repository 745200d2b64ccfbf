package repository

import (
	"context"

	"clouddocs/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL
// queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new metadata record and returns the stored document
	// (may include values set by the database).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns every document owned by ownerID. Row order is an
	// implementation detail; callers must not depend on it.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}
