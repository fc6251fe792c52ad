// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	repository "github.com/modelserve/scored/internal/adapters/repository"
	"github.com/modelserve/scored/internal/dispatch"
	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/internal/domain/predictor"
	"github.com/modelserve/scored/internal/domain/validate"
	"github.com/modelserve/scored/pkg/logger"
	"github.com/modelserve/scored/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultGateMultiplier = 16
	defaultTimeout        = 2 * time.Second
	defaultMaxFeatures    = 10_000
	defaultRecentSize     = 256
)

// Service implements the API dependencies for the scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	pred       predictor.Predictor
	dispatcher *dispatch.Dispatcher
	store      repository.Store

	// Configuration
	modelSpec    predictor.Spec
	gateCapacity int
	timeout      time.Duration
	maxFeatures  int
	recentSize   int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithModelSpec sets the model adapter configuration.
func WithModelSpec(spec predictor.Spec) Option {
	return func(s *Service) {
		s.modelSpec = spec
	}
}

// WithGateCapacity bounds the number of concurrently admitted requests.
func WithGateCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.gateCapacity = capacity
		}
	}
}

// WithTimeout bounds a single predict call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithMaxFeatures caps the accepted feature vector length.
func WithMaxFeatures(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxFeatures = max
		}
	}
}

// WithRecentSize bounds the recent-outcome store.
func WithRecentSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.recentSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelSpec:    predictor.Spec{Kind: "identity"},
		gateCapacity: runtime.NumCPU() * defaultGateMultiplier,
		timeout:      defaultTimeout,
		maxFeatures:  defaultMaxFeatures,
		recentSize:   defaultRecentSize,
		logger:       nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components. A model load
// failure is fatal: the caller must abort before serving traffic.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	pred, err := predictor.Load(ctx, s.modelSpec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStartService, err)
	}
	s.pred = pred

	s.store = repository.NewRingStore(
		repository.WithCapacity(s.recentSize),
	)
	s.dispatcher = dispatch.New(pred,
		dispatch.WithGateCapacity(s.gateCapacity),
		dispatch.WithTimeout(s.timeout),
		dispatch.WithValidator(validate.New(
			validate.WithMaxFeatures(s.maxFeatures),
		)),
		dispatch.WithRecorder(s.store),
		dispatch.WithLogger(s.logger.Named("dispatch")),
	)

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.String("model", pred.Kind()),
		logger.Bool("exclusive", s.dispatcher.Exclusive()),
		logger.Int("gateCapacity", s.gateCapacity),
		logger.String("timeout", s.timeout.String()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping scoring service...")

	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// Score runs a raw payload through the dispatcher.
func (s *Service) Score(ctx context.Context, raw []byte) (model.ScoreResult, error) {
	s.mu.RLock()
	started := s.started
	d := s.dispatcher
	s.mu.RUnlock()

	if !started {
		return model.ScoreResult{}, ErrNotStarted
	}
	return d.Score(ctx, raw)
}

// Healthy reports model readiness via a canary prediction.
func (s *Service) Healthy(ctx context.Context) bool {
	s.mu.RLock()
	started := s.started
	pred := s.pred
	s.mu.RUnlock()

	if !started {
		return false
	}
	return pred.Healthy(ctx)
}

// RecentOutcomes returns up to n terminal outcomes, newest first.
func (s *Service) RecentOutcomes(ctx context.Context, n int) []model.Outcome {
	s.mu.RLock()
	started := s.started
	store := s.store
	s.mu.RUnlock()

	if !started {
		return []model.Outcome{}
	}
	return store.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"model":         s.modelSpec.Kind,
		"gate_capacity": s.gateCapacity,
		"timeout_ms":    s.timeout.Milliseconds(),
	}

	if s.started {
		ctx := context.Background()
		inFlight := s.dispatcher.InFlight()

		stats["model"] = s.pred.Kind()
		stats["exclusive"] = s.dispatcher.Exclusive()
		stats["in_flight"] = inFlight
		stats["recent_count"] = s.store.Count(ctx)
		stats["totals_by_status"] = s.store.TotalByStatus(ctx)

		// Update metrics
		metrics.UpdateInFlight(inFlight)
	}

	return stats
}
