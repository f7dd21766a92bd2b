package dataroom

import (
	"context"
	"sync"

	"dataroom/internal/domain"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/workspace"
)

// WorkspaceManager owns one workspace per authenticated user and loads it
// from the persistence collaborator on first use
type WorkspaceManager struct {
	service  *Service
	identity roomSvc.Identity

	mu         sync.Mutex
	workspaces map[string]*workspace.Workspace
}

// NewWorkspaceManager creates a new workspace manager
func NewWorkspaceManager(service *Service, identity roomSvc.Identity) *WorkspaceManager {
	return &WorkspaceManager{
		service:    service,
		identity:   identity,
		workspaces: make(map[string]*workspace.Workspace),
	}
}

// Current returns the loaded workspace of the user behind ctx
func (m *WorkspaceManager) Current(ctx context.Context) (*workspace.Workspace, error) {
	ws, err := m.lookup(ctx)
	if err != nil {
		return nil, err
	}

	ws.Lock()
	defer ws.Unlock()
	if !ws.Store.Loaded() {
		if err := m.service.Load(ctx, ws); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

// Reload replaces the user's store with a fresh copy from persistence
func (m *WorkspaceManager) Reload(ctx context.Context) (*workspace.Workspace, error) {
	ws, err := m.lookup(ctx)
	if err != nil {
		return nil, err
	}

	ws.Lock()
	defer ws.Unlock()
	if err := m.service.Load(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Forget drops a user's workspace; the next Current loads it again
func (m *WorkspaceManager) Forget(userID string) {
	m.mu.Lock()
	delete(m.workspaces, userID)
	m.mu.Unlock()
}

func (m *WorkspaceManager) lookup(ctx context.Context) (*workspace.Workspace, error) {
	userID, ok := m.identity.CurrentUserID(ctx)
	if !ok || userID == "" {
		return nil, &domain.UnauthorizedError{Message: "not signed in"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ws, exists := m.workspaces[userID]
	if !exists {
		ws = workspace.New(userID)
		m.workspaces[userID] = ws
	}
	return ws, nil
}
