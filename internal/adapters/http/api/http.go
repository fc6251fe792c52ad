// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/modelserve/scored/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Score runs a raw payload through the dispatcher.
	Score(ctx context.Context, raw []byte) (model.ScoreResult, error)

	// Healthy reports model readiness.
	Healthy(ctx context.Context) bool

	// RecentOutcomes exposes the recent-outcome window.
	RecentOutcomes(ctx context.Context, n int) []model.Outcome
}

// Server wires HTTP routes for the business API.
type Server struct {
	scoreHandler    *ScoreHandler
	healthHandler   *HealthHandler
	metricsHandler  *MetricsHandler
	statsHandler    *StatsHandler
	requestsHandler *RequestsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRequestsLimit int) *Server {
	return &Server{
		scoreHandler:    NewScoreHandler(deps),
		healthHandler:   NewHealthHandler(deps),
		metricsHandler:  NewMetricsHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		requestsHandler: NewRequestsHandler(deps, maxRequestsLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/requests", MetricsMiddleware(s.requestsHandler.HandleGetRequests, "requests"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
