// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/modelserve/scored/internal/dispatch"
	"github.com/modelserve/scored/internal/domain/model"
)

// Maximum accepted request body in bytes.
const maxBodyBytes = 1 << 20

// ScoreDependencies defines the interface for scoring.
type ScoreDependencies interface {
	Score(ctx context.Context, raw []byte) (model.ScoreResult, error)
}

// ScoreHandler handles score requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandlePostScore handles POST /score requests.
//
// The request body carries {"X": [...], "feature_names": [...]?} and the
// response carries {"score": [...]}. The dispatcher's error taxonomy maps
// onto status codes: bad input 400, overload 429, timeout 504, model
// failure 500.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	res, err := h.deps.Score(r.Context(), raw)
	if err != nil {
		writeScoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.WireResponse{Score: res.Scores})
}

// writeScoreError maps a dispatch error to its HTTP status.
func writeScoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dispatch.ErrBadInput):
		writeError(w, http.StatusBadRequest, "bad_input", err)
	case errors.Is(err, dispatch.ErrOverloaded):
		writeError(w, http.StatusTooManyRequests, "overloaded", err)
	case errors.Is(err, dispatch.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	case errors.Is(err, dispatch.ErrModelFailure):
		writeError(w, http.StatusInternalServerError, "model_failure", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
