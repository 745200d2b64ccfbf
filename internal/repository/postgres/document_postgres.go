package postgres

import (
	"context"
	"database/sql"

	"clouddocs/internal/model"
	"clouddocs/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of
// repository.DocumentRepository. It uses database/sql with parameterized
// queries; rows are validated into the strict Document schema at scan time.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, name, mime_type, size_bytes, blob_key, description, created_at, updated_at, owner_id`

// scanDocument reads one row into a loose record and parses it, so a corrupt
// row fails fast as model.ErrMalformedRecord instead of leaking inward.
func scanDocument(scan func(dest ...any) error) (*model.Document, error) {
	var (
		rec       model.Record
		desc      sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	if err := scan(
		&rec.ID,
		&rec.Name,
		&rec.MimeType,
		&rec.SizeBytes,
		&rec.BlobKey,
		&desc,
		&createdAt,
		&updatedAt,
		&rec.OwnerID,
	); err != nil {
		return nil, err
	}
	if desc.Valid {
		rec.Description = &desc.String
	}
	if createdAt.Valid {
		rec.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		rec.UpdatedAt = &updatedAt.Time
	}
	return model.ParseRecord(rec)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, name, mime_type, size_bytes, blob_key, description, created_at, updated_at, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + documentColumns
	var desc any
	if doc.Description != "" {
		desc = doc.Description
	}
	var updated any
	if doc.UpdatedAt != nil {
		updated = *doc.UpdatedAt
	}
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Name,
		doc.MimeType,
		doc.SizeBytes,
		doc.BlobKey,
		desc,
		doc.CreatedAt,
		updated,
		doc.OwnerID,
	)
	return scanDocument(row.Scan)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	return scanDocument(row.Scan)
}

// ListByOwner returns every document row owned by ownerID.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document by ID. It does not return an error if the row
// does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
