package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors to HTTP statuses. Anything unrecognized is
// a 500 with a generic body so internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrNoProjectsAssigned),
		errors.Is(err, common.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: common.ErrNotFound.Error()})
	case errors.Is(err, common.ErrUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: common.ErrUnavailable.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: common.ErrInternal.Error()})
	}
}
