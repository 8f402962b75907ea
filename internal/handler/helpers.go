package handler

import (
	"errors"
	"net/http"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var quotaErr *domain.QuotaExceededError
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &quotaErr):
		extras := map[string]interface{}{"resource": quotaErr.Resource}
		if !quotaErr.Unknown {
			extras["current"] = quotaErr.Current
			extras["max"] = quotaErr.Max
		}
		httputil.RespondErrorWithExtras(w, http.StatusForbidden, quotaErr.Error(), extras)
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// PathID extracts the integer {id} path value, writing a 400 on failure
func PathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := httputil.PathInt(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// QueryID extracts an optional integer query parameter, writing a 400 when it is malformed
func QueryID(w http.ResponseWriter, r *http.Request, name string) (id int, present bool, ok bool) {
	id, present, err := httputil.QueryInt(r, name)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, present, false
	}
	return id, present, true
}
