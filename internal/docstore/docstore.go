package docstore

import (
	"context"
	"io"
	"time"

	"clouddocs/internal/model"
	"clouddocs/internal/storage"
)

// Package docstore is the remote document store boundary: metadata records and
// file blobs behind one SDK-shaped interface. All failures cross this boundary
// as *Error so nothing upstream has to understand transport details.

// UploadInput carries everything needed to persist one uploaded file.
type UploadInput struct {
	OwnerID     string
	Name        string
	MimeType    string
	SizeBytes   int64
	Description string
	Body        io.Reader
}

// UploadResult is returned once both the blob and its metadata record exist.
type UploadResult struct {
	ID      string `json:"id"`
	BlobKey string `json:"blob_key"`
}

// ProgressFunc observes upload progress as bytes move to the blob store.
// total is the declared size, or -1 when unknown.
type ProgressFunc func(transferred, total int64)

// Store exposes create/read/delete of document metadata and blobs.
//
// ListDocuments fails with KindNotAuthenticated, KindIndexRequired, or
// KindNetwork. DeleteDocument fails with KindNotFound or KindNotAuthorized.
// UploadBlob fails with KindPermissionDenied, KindCancelled, or KindUnknown.
type Store interface {
	// ListDocuments returns every record owned by ownerID. Order is not part
	// of the contract; callers re-derive it.
	ListDocuments(ctx context.Context, ownerID string) ([]model.Document, error)

	// GetDocument returns a single record by id.
	GetDocument(ctx context.Context, id string) (*model.Document, error)

	// DeleteDocument removes the metadata record, refusing ids owned by
	// someone other than ownerID.
	DeleteDocument(ctx context.Context, id, ownerID string) error

	// DeleteBlob removes the underlying file content by its blob key.
	DeleteBlob(ctx context.Context, blobKey string) error

	// UploadBlob stores the file content and its metadata record as one
	// logical operation, rolling the blob back if the record cannot be saved.
	UploadBlob(ctx context.Context, in UploadInput, onProgress ProgressFunc) (*UploadResult, error)

	// OpenBlob streams a blob's content for inline viewing.
	OpenBlob(ctx context.Context, blobKey string) (io.ReadCloser, storage.ObjectInfo, error)

	// PresignDownload returns a time-limited download URL for a blob.
	PresignDownload(ctx context.Context, blobKey string, expiry time.Duration) (string, error)
}
