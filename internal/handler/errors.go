package handler

import (
	"errors"
	"net/http"

	"dataroom/internal/domain"
	"dataroom/internal/httputil"
)

// handleError converts domain errors to problem responses
func (b *base) handleError(w http.ResponseWriter, r *http.Request, err error) {
	// whatever a collaborator returned underneath stays a collaborator failure
	var persistErr *domain.PersistenceError
	if errors.As(err, &persistErr) {
		b.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.RespondError(w, persistErr.StatusCode(), persistErr.Error())
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		extras := map[string]any{"resource_type": conflictErr.ResourceType}
		if conflictErr.ResourceID != "" {
			extras["resource_id"] = conflictErr.ResourceID
		}
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), extras)
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, validationErr.Error(),
			map[string]any{"field": validationErr.Field})
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.StatusCode()
		if status >= http.StatusInternalServerError {
			b.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		httputil.RespondError(w, status, httpErr.Error())
		return
	}

	b.logger.Error("unexpected error", "method", r.Method, "path", r.URL.Path, "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
