// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/modelserve/scored/internal/domain/model"
)

// RequestsDependencies defines the interface for recent-outcome queries.
type RequestsDependencies interface {
	RecentOutcomes(ctx context.Context, n int) []model.Outcome
}

// RequestsHandler handles recent-request queries.
type RequestsHandler struct {
	deps     RequestsDependencies
	maxLimit int
}

// NewRequestsHandler creates a new requests handler.
func NewRequestsHandler(deps RequestsDependencies, maxLimit int) *RequestsHandler {
	return &RequestsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRequests handles GET /requests?limit=N requests.
func (h *RequestsHandler) HandleGetRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.deps.RecentOutcomes(r.Context(), n))
}
