package handler

import (
	"net/http"

	"dataroom/internal/domain"
	"dataroom/internal/httputil"
)

// GetTree returns the nested folder/file tree for a room
// GET /api/rooms/{id}/tree
func (h *RoomHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	roomID := httputil.PathID(r)
	if roomID == "" {
		h.handleError(w, r, domain.NewValidationError("id", "Room ID is required"))
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	tree, err := h.service.Tree(ws, roomID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tree)
}
