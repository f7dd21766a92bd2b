package handler

import (
	"log/slog"
	"net/http"

	"dataroom/internal/httputil"
	"dataroom/internal/service/dataroom"
)

// SessionHandler exposes the caller's navigation state
type SessionHandler struct {
	base
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *dataroom.Service, workspaces *dataroom.WorkspaceManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{base: newBase(service, workspaces, logger)}
}

// GetSession returns the session state including the visible items
// GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.service.SessionState(ws))
}

// GetVisibleItems returns only the items at the active location
// GET /api/session/items
func (h *SessionHandler) GetVisibleItems(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.service.SessionState(ws).Items)
}

type idBody struct {
	ID *string `json:"id"`
}

// SetActiveRoom opens a room; {"id": null} closes it
// PUT /api/session/room
func (h *SessionHandler) SetActiveRoom(w http.ResponseWriter, r *http.Request) {
	var body idBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	state, err := h.service.OpenRoom(ws, body.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}

// SetActiveFolder navigates within the active room; {"id": null} is the root
// PUT /api/session/folder
func (h *SessionHandler) SetActiveFolder(w http.ResponseWriter, r *http.Request) {
	var body idBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	state, err := h.service.OpenFolder(ws, body.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}

// SetSearch sets the search filter
// PUT /api/session/search
func (h *SessionHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.service.Search(ws, body.Query))
}

// ToggleSelection flips one item in the multi-select set
// POST /api/session/selection/{id}
func (h *SessionHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.service.ToggleSelection(ws, httputil.PathID(r)))
}

// Reload replaces the in-memory copy with the persisted one
// POST /api/session/reload
func (h *SessionHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ws, err := h.workspaces.Reload(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.service.SessionState(ws))
}
