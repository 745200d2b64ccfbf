package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"clouddocs/internal/collection"
	"clouddocs/internal/config"
	"clouddocs/internal/docstore"
	"clouddocs/internal/fileinfo"
	"clouddocs/internal/http/middleware"
	"clouddocs/internal/model"
	"clouddocs/internal/projection"
	"clouddocs/internal/stats"
)

// listResponse is the wire shape of the displayed document list. Total counts
// the authoritative list so the client can tell "no documents yet" apart from
// "no matches for this search".
type listResponse struct {
	Items      []model.Document `json:"data"`
	Total      int              `json:"total"`
	EmptyState string           `json:"empty_state,omitempty"`
	Search     string           `json:"search,omitempty"`
	Sort       string           `json:"sort"`
}

// ListDocuments reloads the session's collection and projects it through the
// search and sort query parameters.
func ListDocuments(colls *collection.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)
		if sess == nil {
			return fiber.ErrUnauthorized
		}

		ctrl := colls.For(sess.UserID)
		if err := ctrl.Load(c.UserContext()); err != nil {
			return writeStoreError(c, err)
		}

		docs := ctrl.Snapshot()
		term := c.Query("search")
		key := projection.ParseSortKey(c.Query("sort"))
		display := projection.Project(docs, term, key)

		return c.JSON(listResponse{
			Items:      display,
			Total:      len(docs),
			EmptyState: projection.Empty(len(docs), len(display)).String(),
			Search:     term,
			Sort:       string(key),
		})
	}
}

// UploadDocument accepts a multipart upload (field "file", optional
// "description"), persists it through the store, and signals the session's
// collection to re-fetch.
func UploadDocument(store docstore.Store, colls *collection.Manager, cfg config.UploadConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)
		if sess == nil {
			return fiber.ErrUnauthorized
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		if err := fileinfo.ValidateUpload(fh.Filename, fh.Size, ct, cfg.MaxBytes); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILE", err.Error())
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := store.UploadBlob(c.UserContext(), docstore.UploadInput{
			OwnerID:     sess.UserID,
			Name:        fh.Filename,
			MimeType:    ct,
			SizeBytes:   fh.Size,
			Description: c.FormValue("description"),
			Body:        f,
		}, nil)
		if err != nil {
			return writeStoreError(c, err)
		}

		// The upload payload is not inserted locally; a reload picks up
		// server-assigned fields. A failed reload is recorded in the
		// controller's error state and surfaces on the next list.
		_ = colls.For(sess.UserID).NotifyExternalChange(c.UserContext())

		if doc, err := store.GetDocument(c.UserContext(), res.ID); err == nil {
			return c.Status(fiber.StatusCreated).JSON(doc)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetDocument returns one document's metadata, owner-scoped.
func GetDocument(store docstore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := ownedDocument(c, store)
		if doc == nil {
			return err
		}
		return c.JSON(doc)
	}
}

// StreamDocument streams the blob content inline for the viewer.
func StreamDocument(store docstore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := ownedDocument(c, store)
		if doc == nil {
			return err
		}

		rc, info, err := store.OpenBlob(c.UserContext(), doc.BlobKey)
		if err != nil {
			return writeStoreError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.MimeType)
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+fileinfo.SanitizeName(doc.Name)+`"`)
		return c.SendStream(rc, int(info.Size))
	}
}

type downloadResponse struct {
	URL          string `json:"url"`
	ExpiresInSec int    `json:"expires_in_sec"`
}

// DownloadDocument returns a presigned, time-limited download URL.
func DownloadDocument(store docstore.Store, expirySec int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := ownedDocument(c, store)
		if doc == nil {
			return err
		}

		expiry := time.Duration(expirySec) * time.Second
		u, err := store.PresignDownload(c.UserContext(), doc.BlobKey, expiry)
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.JSON(downloadResponse{URL: u, ExpiresInSec: expirySec})
	}
}

// DeleteDocument removes a document (blob and record) through the session's
// collection controller. Reaching this handler implies the client confirmed
// the delete.
func DeleteDocument(colls *collection.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)
		if sess == nil {
			return fiber.ErrUnauthorized
		}

		ctrl := colls.For(sess.UserID)
		if !ctrl.Loaded() {
			if err := ctrl.Load(c.UserContext()); err != nil {
				return writeStoreError(c, err)
			}
		}

		if err := ctrl.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeStoreError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// StorageStats reports the session's storage usage summary.
func StorageStats(colls *collection.Manager, quotaBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)
		if sess == nil {
			return fiber.ErrUnauthorized
		}

		ctrl := colls.For(sess.UserID)
		if err := ctrl.Load(c.UserContext()); err != nil {
			return writeStoreError(c, err)
		}
		return c.JSON(stats.Compute(ctrl.Snapshot(), quotaBytes))
	}
}

// ownedDocument loads the :id document and enforces owner scoping. On failure
// it has already written the response and returns the written error.
func ownedDocument(c *fiber.Ctx, store docstore.Store) (*model.Document, error) {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return nil, fiber.ErrUnauthorized
	}

	doc, err := store.GetDocument(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, writeStoreError(c, err)
	}
	if doc.OwnerID != sess.UserID {
		// Cross-user ids are indistinguishable from missing ones.
		return nil, writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	}
	return doc, nil
}
