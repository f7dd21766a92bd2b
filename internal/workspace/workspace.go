package workspace

import "sync"

// Workspace is the explicit state container for one user: the entity store,
// the resolver over it and the navigation/selection session. Mutations are
// serialized with Lock/Unlock; reads go straight to the store.
type Workspace struct {
	OwnerID  string
	Store    *Store
	Resolver *PathResolver
	Session  *Session

	mu sync.Mutex
}

// New creates an empty, unloaded workspace for ownerID
func New(ownerID string) *Workspace {
	store := NewStore()
	resolver := NewPathResolver(store)
	return &Workspace{
		OwnerID:  ownerID,
		Store:    store,
		Resolver: resolver,
		Session:  NewSession(resolver),
	}
}

// Lock acquires the single-writer lock
func (w *Workspace) Lock() { w.mu.Lock() }

// Unlock releases the single-writer lock
func (w *Workspace) Unlock() { w.mu.Unlock() }
