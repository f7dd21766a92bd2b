package handler

import (
	"log/slog"
	"net/http"

	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
	"dataroom/internal/service/dataroom"
	"dataroom/internal/workspace"
)

// base carries what every data room handler needs
type base struct {
	service    *dataroom.Service
	workspaces *dataroom.WorkspaceManager
	logger     *slog.Logger
}

func newBase(service *dataroom.Service, workspaces *dataroom.WorkspaceManager, logger *slog.Logger) base {
	return base{service: service, workspaces: workspaces, logger: logger}
}

// workspace resolves the caller's workspace, writing the error response on failure
func (b *base) workspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, err := b.workspaces.Current(r.Context())
	if err != nil {
		b.handleError(w, r, err)
		return nil, false
	}
	return ws, true
}

// deleteResponse is the body of every successful DELETE
type deleteResponse struct {
	*roomSvc.DeleteSummary
	StorageError string `json:"storage_error,omitempty"`
}

func respondDeleted(w http.ResponseWriter, summary *roomSvc.DeleteSummary) {
	resp := deleteResponse{DeleteSummary: summary}
	if summary.StorageErr != nil {
		resp.StorageError = summary.StorageErr.Error()
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}
