package handler

import (
	"log/slog"
	"net/http"

	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
	"dataroom/internal/service/dataroom"
)

// RoomHandler handles data room HTTP requests
type RoomHandler struct {
	base
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(service *dataroom.Service, workspaces *dataroom.WorkspaceManager, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{base: newBase(service, workspaces, logger)}
}

// ListRooms returns the caller's data rooms
// GET /api/rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.service.ListRooms(ws))
}

// CreateRoom creates a data room
// POST /api/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomSvc.CreateRoomRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	room, err := h.service.CreateRoom(r.Context(), ws, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, room)
}

// updateRoomBody lets clients clear the description with an explicit null
type updateRoomBody struct {
	Name        *string                 `json:"name"`
	Description httputil.OptionalString `json:"description"`
}

// UpdateRoom renames a room or changes its description
// PATCH /api/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var body updateRoomBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	room, err := h.service.UpdateRoom(r.Context(), ws, httputil.PathID(r), &roomSvc.UpdateRoomRequest{
		Name:        body.Name,
		Description: body.Description.Patch(),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, room)
}

// DeleteRoom deletes a room with everything in it
// DELETE /api/rooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	summary, err := h.service.DeleteRoom(r.Context(), ws, httputil.PathID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respondDeleted(w, summary)
}

// ListItems lists folders then files at one location of a room
// GET /api/rooms/{id}/items?folder_id=&q=
func (h *RoomHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListItems(ws, httputil.PathID(r), httputil.OptionalQuery(r, "folder_id"), r.URL.Query().Get("q"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}
