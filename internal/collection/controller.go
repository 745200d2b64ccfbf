package collection

import (
	"context"
	"sync"

	"clouddocs/internal/docstore"
	"clouddocs/internal/model"
)

// Controller owns the authoritative document list for one user session. The
// list is replaced wholesale on load, shrunk by one entry on confirmed delete,
// and never handed out by reference — readers get snapshots.
type Controller struct {
	store   docstore.Store
	ownerID string

	mu      sync.Mutex
	docs    []model.Document
	loaded  bool
	lastErr *State
}

// State is the recorded outcome of the most recent failed load, kept so the
// presentation layer can offer the right affordance (retry, create index).
type State struct {
	Kind           docstore.Kind
	Message        string
	RemediationURL string
}

// NewController builds a controller scoped to ownerID. Every record it ever
// holds belongs to that owner.
func NewController(store docstore.Store, ownerID string) *Controller {
	return &Controller{store: store, ownerID: ownerID}
}

// Load fetches the owner's documents and replaces the authoritative list
// atomically. On failure the list is left untouched and the error state is
// recorded. Concurrent loads are permitted; the last response to arrive wins.
func (c *Controller) Load(ctx context.Context) error {
	if c.ownerID == "" {
		err := docstore.NewError(docstore.KindNotAuthenticated, "no user session")
		c.recordError(err)
		return err
	}

	// The fetch happens outside the lock so a slow backend never blocks
	// readers of the current list.
	docs, err := c.store.ListDocuments(ctx, c.ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = stateFor(err)
		return err
	}
	c.docs = docs
	c.loaded = true
	c.lastErr = nil
	return nil
}

// Delete removes the blob and then the metadata record for id, and only after
// both succeed drops the entry from the authoritative list. The local removal
// applies to whatever list is current at completion time and is a no-op if a
// racing reload already dropped the id.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	var target *model.Document
	for i := range c.docs {
		if c.docs[i].ID == id {
			d := c.docs[i]
			target = &d
			break
		}
	}
	c.mu.Unlock()

	if target == nil {
		return docstore.NewError(docstore.KindNotFound, "document is not in the collection")
	}

	if err := c.store.DeleteBlob(ctx, target.BlobKey); err != nil {
		return err
	}
	if err := c.store.DeleteDocument(ctx, id, c.ownerID); err != nil {
		// The blob is already gone and no compensation is attempted; the
		// caller decides what to do with the half-deleted document.
		return docstore.WrapError(docstore.KindPartialDelete,
			"blob removed but metadata delete failed", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.docs {
		if c.docs[i].ID == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			break
		}
	}
	return nil
}

// NotifyExternalChange re-fetches the collection after a collaborator reports
// a new persisted document. The reported payload is never inserted directly;
// a full reload picks up server-assigned fields and re-validates ownership.
func (c *Controller) NotifyExternalChange(ctx context.Context) error {
	return c.Load(ctx)
}

// Snapshot returns a copy of the authoritative list. Mutating the returned
// slice never affects the controller.
func (c *Controller) Snapshot() []model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Loaded reports whether at least one load has succeeded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// LastError returns the recorded state of the most recent failed load, or nil
// after a successful one.
func (c *Controller) LastError() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr == nil {
		return nil
	}
	s := *c.lastErr
	return &s
}

func (c *Controller) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = stateFor(err)
}

func stateFor(err error) *State {
	return &State{
		Kind:           docstore.KindOf(err),
		Message:        err.Error(),
		RemediationURL: docstore.RemediationURLOf(err),
	}
}
