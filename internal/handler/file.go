package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"dataroom/internal/config"
	"dataroom/internal/domain"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
	"dataroom/internal/service/dataroom"
)

// multipart envelope allowance on top of the document itself
const uploadOverhead = 1 << 20

// FileHandler handles document HTTP requests
type FileHandler struct {
	base
}

// NewFileHandler creates a new file handler
func NewFileHandler(service *dataroom.Service, workspaces *dataroom.WorkspaceManager, logger *slog.Logger) *FileHandler {
	return &FileHandler{base: newBase(service, workspaces, logger)}
}

// UploadFile accepts a multipart form with a "file" part and optional
// room_id, folder_id and name fields
// POST /api/files
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+uploadOverhead)
	req, err := readUpload(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	file, err := h.service.UploadFile(r.Context(), ws, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, file)
}

func readUpload(r *http.Request) (*roomSvc.UploadFileRequest, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, dataroom.UploadTooLarge()
		}
		return nil, domain.NewValidationError("file", "expected a multipart form")
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		return nil, domain.NewValidationError("file", "file is required")
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	return &roomSvc.UploadFileRequest{
		RoomID:   r.FormValue("room_id"),
		FolderID: optionalForm(r, "folder_id"),
		Name:     name,
		MimeType: detectMimeType(header.Header.Get("Content-Type"), data),
		Data:     data,
	}, nil
}

// detectMimeType trusts a specific declared type and sniffs otherwise
func detectMimeType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
		return mediaType
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}

func optionalForm(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

// RenameFile renames a file
// PATCH /api/files/{id}
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req roomSvc.RenameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	file, err := h.service.RenameFile(r.Context(), ws, httputil.PathID(r), req.Name)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file and its stored object
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	summary, err := h.service.DeleteFile(r.Context(), ws, httputil.PathID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respondDeleted(w, summary)
}

// GetDownloadURL returns a temporary URL for viewing a file.
// The url is null when the storage backend cannot sign URLs.
// GET /api/files/{id}/url
func (h *FileHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	url, err := h.service.SignedURL(r.Context(), ws, httputil.PathID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	var body struct {
		URL *string `json:"url"`
	}
	if url != "" {
		body.URL = &url
	}
	httputil.RespondJSON(w, http.StatusOK, body)
}
