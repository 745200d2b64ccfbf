package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"clouddocs/internal/model"
	"clouddocs/internal/repository"
	"clouddocs/internal/storage"
)

// Client composes the blob store and the metadata repository into the single
// Store the collection layer talks to.
type Client struct {
	blobs storage.Storage
	meta  repository.DocumentRepository
}

// NewClient constructs a Store over the given blob and metadata backends.
func NewClient(blobs storage.Storage, meta repository.DocumentRepository) *Client {
	return &Client{blobs: blobs, meta: meta}
}

var _ Store = (*Client)(nil)

// ListDocuments returns all records owned by ownerID. An empty owner id is a
// precondition failure; no remote call is attempted.
func (c *Client) ListDocuments(ctx context.Context, ownerID string) ([]model.Document, error) {
	if ownerID == "" {
		return nil, NewError(KindNotAuthenticated, "no user session")
	}
	docs, err := c.meta.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ClassifyListError(err)
	}
	return docs, nil
}

// GetDocument returns a single record by id.
func (c *Client) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, NewError(KindNotFound, "document id is required")
	}
	doc, err := c.meta.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, WrapError(KindNotFound, "document not found", err)
		}
		if errors.Is(err, model.ErrMalformedRecord) {
			return nil, WrapError(KindMalformedRecord, "stored record is invalid", err)
		}
		return nil, WrapError(KindNetwork, "fetch document", err)
	}
	return doc, nil
}

// DeleteDocument removes the metadata record after verifying ownership.
func (c *Client) DeleteDocument(ctx context.Context, id, ownerID string) error {
	doc, err := c.meta.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WrapError(KindNotFound, "document not found", err)
		}
		return WrapError(KindNetwork, "fetch document for delete", err)
	}
	if doc.OwnerID != ownerID {
		return NewError(KindNotAuthorized, "document belongs to another user")
	}
	if err := c.meta.Delete(ctx, id); err != nil {
		return WrapError(KindNetwork, "delete document record", err)
	}
	return nil
}

// DeleteBlob removes the underlying file content.
func (c *Client) DeleteBlob(ctx context.Context, blobKey string) error {
	if err := c.blobs.Delete(ctx, blobKey); err != nil {
		return WrapError(KindNetwork, "delete blob", err)
	}
	return nil
}

// UploadBlob streams the file to the blob store, then persists its metadata
// record. If the record cannot be saved the stored blob is rolled back so the
// two halves stay consistent.
func (c *Client) UploadBlob(ctx context.Context, in UploadInput, onProgress ProgressFunc) (*UploadResult, error) {
	if in.Body == nil {
		return nil, NewError(KindUnknown, "upload body is nil")
	}
	if in.OwnerID == "" {
		return nil, NewError(KindNotAuthenticated, "no user session")
	}

	// Blob keys are owner-scoped: documents/<owner>/<uuid><ext>.
	id := uuid.New().String()
	key := path.Join("documents", in.OwnerID, id+filepath.Ext(in.Name))

	body := in.Body
	if onProgress != nil {
		body = &progressReader{r: in.Body, total: in.SizeBytes, fn: onProgress}
	}

	if _, err := c.blobs.Put(ctx, key, body, storage.PutOptions{
		Size:        in.SizeBytes,
		ContentType: in.MimeType,
		Metadata:    map[string]string{"original-filename": in.Name},
	}); err != nil {
		return nil, classifyUploadError(err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          id,
		Name:        in.Name,
		MimeType:    in.MimeType,
		SizeBytes:   in.SizeBytes,
		BlobKey:     key,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   &now,
		OwnerID:     in.OwnerID,
	}
	if _, err := c.meta.Create(ctx, doc); err != nil {
		// Roll back the orphaned blob so storage and metadata stay in step.
		if delErr := c.blobs.Delete(ctx, key); delErr != nil {
			return nil, WrapError(KindUnknown,
				fmt.Sprintf("metadata save failed: %v; rollback delete failed", err), delErr)
		}
		return nil, WrapError(KindUnknown, "metadata save failed", err)
	}

	return &UploadResult{ID: id, BlobKey: key}, nil
}

// OpenBlob streams blob content for inline viewing.
func (c *Client) OpenBlob(ctx context.Context, blobKey string) (io.ReadCloser, storage.ObjectInfo, error) {
	rc, info, err := c.blobs.Get(ctx, blobKey)
	if err != nil {
		return nil, storage.ObjectInfo{}, WrapError(KindNetwork, "open blob", err)
	}
	return rc, info, nil
}

// PresignDownload returns a time-limited download URL for a blob.
func (c *Client) PresignDownload(ctx context.Context, blobKey string, expiry time.Duration) (string, error) {
	u, err := c.blobs.PresignGet(ctx, blobKey, expiry)
	if err != nil {
		return "", WrapError(KindNetwork, "presign download", err)
	}
	return u, nil
}

// classifyUploadError maps blob-store failures into the kinds the upload
// operation is allowed to fail with.
func classifyUploadError(err error) *Error {
	if errors.Is(err, context.Canceled) {
		return WrapError(KindCancelled, "upload cancelled", err)
	}
	msg := err.Error()
	if strings.Contains(msg, "Access Denied") || strings.Contains(msg, "AccessDenied") {
		return WrapError(KindPermissionDenied, "upload rejected by storage", err)
	}
	return WrapError(KindUnknown, "upload to storage failed", err)
}

// progressReader counts bytes as they are consumed by the blob store and
// reports them to the caller's callback.
type progressReader struct {
	r           io.Reader
	total       int64
	transferred int64
	fn          ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.transferred += int64(n)
		p.fn(p.transferred, p.total)
	}
	return n, err
}
