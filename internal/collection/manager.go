package collection

import (
	"sync"

	"clouddocs/internal/docstore"
)

// Manager hands out one Controller per owner so the HTTP layer can look up
// the session's collection without holding ambient state.
type Manager struct {
	store docstore.Store

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager builds an empty controller registry over the given store.
func NewManager(store docstore.Store) *Manager {
	return &Manager{store: store, controllers: make(map[string]*Controller)}
}

// For returns the controller for ownerID, creating it on first use.
func (m *Manager) For(ownerID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.controllers[ownerID]
	if !ok {
		ctrl = NewController(m.store, ownerID)
		m.controllers[ownerID] = ctrl
	}
	return ctrl
}
