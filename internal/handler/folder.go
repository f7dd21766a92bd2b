package handler

import (
	"log/slog"
	"net/http"

	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
	"dataroom/internal/service/dataroom"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	base
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(service *dataroom.Service, workspaces *dataroom.WorkspaceManager, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{base: newBase(service, workspaces, logger)}
}

// CreateFolder creates a folder. An empty room_id means the active room.
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req roomSvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	folder, err := h.service.CreateFolder(r.Context(), ws, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// RenameFolder renames a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req roomSvc.RenameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	folder, err := h.service.RenameFolder(r.Context(), ws, httputil.PathID(r), req.Name)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder with all descendants
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	summary, err := h.service.DeleteFolder(r.Context(), ws, httputil.PathID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respondDeleted(w, summary)
}

// GetBreadcrumbs returns the path from the room root to a folder
// GET /api/folders/{id}/breadcrumbs
func (h *FolderHandler) GetBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	crumbs, err := h.service.Breadcrumbs(ws, httputil.PathID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, crumbs)
}
