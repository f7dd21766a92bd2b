package handler

import (
	"log/slog"
	"net/http"

	"dataroom/internal/service/dataroom"
)

// NewRouter registers every route on a fresh mux (Go 1.22+ patterns)
func NewRouter(service *dataroom.Service, workspaces *dataroom.WorkspaceManager, logger *slog.Logger) *http.ServeMux {
	rooms := NewRoomHandler(service, workspaces, logger)
	folders := NewFolderHandler(service, workspaces, logger)
	files := NewFileHandler(service, workspaces, logger)
	session := NewSessionHandler(service, workspaces, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthCheck)

	// Room routes
	mux.HandleFunc("GET /api/rooms", rooms.ListRooms)
	mux.HandleFunc("POST /api/rooms", rooms.CreateRoom)
	mux.HandleFunc("PATCH /api/rooms/{id}", rooms.UpdateRoom)
	mux.HandleFunc("DELETE /api/rooms/{id}", rooms.DeleteRoom)
	mux.HandleFunc("GET /api/rooms/{id}/items", rooms.ListItems)
	mux.HandleFunc("GET /api/rooms/{id}/tree", rooms.GetTree)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folders.CreateFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folders.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folders.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/breadcrumbs", folders.GetBreadcrumbs)

	// File routes
	mux.HandleFunc("POST /api/files", files.UploadFile)
	mux.HandleFunc("PATCH /api/files/{id}", files.RenameFile)
	mux.HandleFunc("DELETE /api/files/{id}", files.DeleteFile)
	mux.HandleFunc("GET /api/files/{id}/url", files.GetDownloadURL)

	// Session routes
	mux.HandleFunc("GET /api/session", session.GetSession)
	mux.HandleFunc("GET /api/session/items", session.GetVisibleItems)
	mux.HandleFunc("PUT /api/session/room", session.SetActiveRoom)
	mux.HandleFunc("PUT /api/session/folder", session.SetActiveFolder)
	mux.HandleFunc("PUT /api/session/search", session.SetSearch)
	mux.HandleFunc("POST /api/session/selection/{id}", session.ToggleSelection)
	mux.HandleFunc("POST /api/session/reload", session.Reload)

	return mux
}
