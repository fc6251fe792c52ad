// Package dispatch is the concurrency and policy core between the network
// boundary and the model.
//
// The dispatcher validates inbound payloads, bounds the number of admitted
// requests with a fixed-size gate, serializes predict calls when the model
// is not thread-safe, and applies a deadline to every predict call. Each
// request resolves to exactly one terminal outcome; nothing is retried
// internally.
package dispatch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/internal/domain/predictor"
	"github.com/modelserve/scored/internal/domain/validate"
	"github.com/modelserve/scored/pkg/logger"
	"github.com/modelserve/scored/pkg/metrics"
)

// Default dispatcher configuration constants.
const (
	defaultGateMultiplier = 16 // multiplier for runtime.NumCPU()
	defaultTimeout        = 2 * time.Second
)

// OutcomeRecorder receives the terminal outcome of every request.
type OutcomeRecorder interface {
	Add(outcome model.Outcome)
}

// Dispatcher owns the admission gate and the exclusive-access slot for the
// shared model handle. It holds the only reference to the predictor that
// request handling goes through.
type Dispatcher struct {
	validator *validate.Validator
	pred      predictor.Predictor

	gate chan struct{} // admission slots; full gate means overload
	slot chan struct{} // one-slot semaphore serializing exclusive predicts

	gateCapacity   int
	timeout        time.Duration
	forceExclusive bool
	exclusive      bool

	recorder OutcomeRecorder
	logger   logger.Logger
}

// New constructs a Dispatcher around a loaded predictor.
func New(pred predictor.Predictor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		validator:    validate.New(),
		pred:         pred,
		gateCapacity: runtime.NumCPU() * defaultGateMultiplier,
		timeout:      defaultTimeout,
		logger:       logger.Get().Named("dispatch"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(d)
	}

	d.exclusive = d.forceExclusive || !pred.ThreadSafe()
	d.gate = make(chan struct{}, d.gateCapacity)
	d.slot = make(chan struct{}, 1)

	metrics.UpdateGateCapacity(d.gateCapacity)
	metrics.UpdateInFlight(0)
	metrics.UpdateGateUtilization(0)

	return d
}

// Exclusive reports whether predict calls are serialized.
func (d *Dispatcher) Exclusive() bool { return d.exclusive }

// InFlight returns the number of currently admitted requests.
func (d *Dispatcher) InFlight() int { return len(d.gate) }

// GateCapacity returns the configured admission gate capacity.
func (d *Dispatcher) GateCapacity() int { return d.gateCapacity }

// predictOutcome carries the result of a predict call across goroutines.
type predictOutcome struct {
	res model.ScoreResult
	err error
}

// Score validates a raw payload and dispatches it to the model under the
// configured concurrency policy. The returned error wraps exactly one of
// the package sentinels.
func (d *Dispatcher) Score(ctx context.Context, raw []byte) (model.ScoreResult, error) {
	received := time.Now()
	id := uuid.New().String()

	req, err := d.validator.Parse(raw)
	if err != nil {
		metrics.RecordValidationError(validate.Reason(err))
		d.finish(ctx, id, received, model.StatusBadInput, 0, err)
		return model.ScoreResult{}, fmt.Errorf("%w: %w", ErrBadInput, err)
	}

	// Admission gate: never queue unboundedly, fail fast when full.
	select {
	case d.gate <- struct{}{}:
	default:
		metrics.RecordOverloadReject()
		d.finish(ctx, id, received, model.StatusOverloaded, len(req.Features), ErrOverloaded)
		return model.ScoreResult{}, fmt.Errorf("%w: gate capacity %d exhausted", ErrOverloaded, d.gateCapacity)
	}
	d.updateGateMetrics()
	defer func() {
		<-d.gate
		d.updateGateMetrics()
	}()

	// One deadline covers the wait for exclusive access and the predict
	// call itself, so callers are never blocked past the configured bound.
	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	if d.exclusive {
		select {
		case d.slot <- struct{}{}:
		case <-timer.C:
			metrics.RecordPredictTimeout()
			d.finish(ctx, id, received, model.StatusTimeout, len(req.Features), ErrTimeout)
			return model.ScoreResult{}, fmt.Errorf("%w: waited %s for exclusive model access", ErrTimeout, d.timeout)
		case <-ctx.Done():
			metrics.RecordPredictTimeout()
			d.finish(ctx, id, received, model.StatusTimeout, len(req.Features), ctx.Err())
			return model.ScoreResult{}, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
	}

	// Predict runs detached from the caller's cancellation: a timed-out
	// caller is unblocked, but the model call keeps running until it
	// returns on its own. The exclusive slot is released only then.
	resCh := make(chan predictOutcome, 1)
	go func() {
		res, predictErr := d.pred.Predict(context.WithoutCancel(ctx), req)
		if d.exclusive {
			<-d.slot
		}
		resCh <- predictOutcome{res: res, err: predictErr}
	}()

	select {
	case out := <-resCh:
		if out.err != nil {
			metrics.RecordModelFailure()
			metrics.RecordErrorByComponent("dispatch", "model_failure")
			d.finish(ctx, id, received, model.StatusModelFailure, len(req.Features), out.err)
			return model.ScoreResult{}, fmt.Errorf("%w: %w", ErrModelFailure, out.err)
		}
		metrics.RecordPredictLatency(float64(out.res.Elapsed.Milliseconds()))
		d.finish(ctx, id, received, model.StatusOK, len(req.Features), nil)
		return out.res, nil
	case <-timer.C:
		metrics.RecordPredictTimeout()
		metrics.RecordErrorByComponent("dispatch", "timeout")
		d.finish(ctx, id, received, model.StatusTimeout, len(req.Features), ErrTimeout)
		return model.ScoreResult{}, fmt.Errorf("%w: predict exceeded %s", ErrTimeout, d.timeout)
	case <-ctx.Done():
		metrics.RecordPredictTimeout()
		metrics.RecordErrorByComponent("dispatch", "timeout")
		d.finish(ctx, id, received, model.StatusTimeout, len(req.Features), ctx.Err())
		return model.ScoreResult{}, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}

// finish records the terminal outcome of a request.
func (d *Dispatcher) finish(ctx context.Context, id string, received time.Time, status string, featureCount int, cause error) {
	durationMs := float64(time.Since(received).Microseconds()) / 1e3

	metrics.RecordScoreOutcome(status)
	metrics.RecordScoreLatency(durationMs)

	outcome := model.Outcome{
		RequestID:    id,
		ReceivedAt:   received,
		Status:       status,
		DurationMS:   durationMs,
		FeatureCount: featureCount,
	}
	if cause != nil {
		outcome.Detail = cause.Error()
	}
	if d.recorder != nil {
		d.recorder.Add(outcome)
	}

	if status == model.StatusOK {
		d.logger.Debug(ctx, "request scored",
			logger.String("requestID", id),
			logger.Int("features", featureCount),
			logger.Float64("durationMs", durationMs),
		)
		return
	}
	d.logger.Warn(ctx, "request failed",
		logger.String("requestID", id),
		logger.String("status", status),
		logger.Float64("durationMs", durationMs),
		logger.Error(cause),
	)
}

// updateGateMetrics refreshes the in-flight and utilization gauges.
func (d *Dispatcher) updateGateMetrics() {
	inFlight := len(d.gate)
	metrics.UpdateInFlight(inFlight)
	metrics.UpdateGateUtilization(float64(inFlight) / float64(d.gateCapacity))
}
