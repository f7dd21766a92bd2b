package dataroom

import (
	"dataroom/internal/domain"
	"dataroom/internal/workspace"
)

// OpenRoom makes roomID the active room (nil closes it). Unknown rooms are rejected.
func (s *Service) OpenRoom(ws *workspace.Workspace, roomID *string) (workspace.SessionState, error) {
	ws.Lock()
	defer ws.Unlock()

	if roomID != nil {
		if _, ok := ws.Store.Room(*roomID); !ok {
			return workspace.SessionState{}, domain.NewNotFoundError("data room", *roomID)
		}
	}
	ws.Session.SetActiveRoom(roomID)
	return ws.Session.State(), nil
}

// OpenFolder navigates to folderID (nil = root) inside the active room
func (s *Service) OpenFolder(ws *workspace.Workspace, folderID *string) (workspace.SessionState, error) {
	ws.Lock()
	defer ws.Unlock()

	active := ws.Session.ActiveRoomID()
	if active == nil {
		return workspace.SessionState{}, noRoomSelected()
	}
	parentID, err := resolveParent(ws, *active, folderID)
	if err != nil {
		return workspace.SessionState{}, err
	}
	ws.Session.NavigateToFolder(parentID)
	return ws.Session.State(), nil
}

// Search sets the filter applied to the visible items
func (s *Service) Search(ws *workspace.Workspace, query string) workspace.SessionState {
	ws.Lock()
	defer ws.Unlock()

	ws.Session.SetSearchQuery(query)
	return ws.Session.State()
}

// ToggleSelection flips the selection state of an item id
func (s *Service) ToggleSelection(ws *workspace.Workspace, id string) workspace.SessionState {
	ws.Lock()
	defer ws.Unlock()

	ws.Session.ToggleSelect(id)
	return ws.Session.State()
}

// SessionState returns a snapshot of the session including visible items
func (s *Service) SessionState(ws *workspace.Workspace) workspace.SessionState {
	ws.Lock()
	defer ws.Unlock()
	return ws.Session.State()
}
