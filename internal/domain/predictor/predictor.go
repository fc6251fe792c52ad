// Package predictor defines the model adapter contract and its implementations.
//
// A Predictor wraps an opaque prediction function behind a uniform capability
// surface: predict, health, and a declared concurrency mode. Load is called
// exactly once at process startup; a load failure is fatal to the service.
package predictor

import (
	"context"
	"fmt"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/pkg/metrics"
)

// Predictor is the capability contract every model adapter implements.
type Predictor interface {
	// Predict scores a validated request, honoring ctx for cancellation.
	Predict(ctx context.Context, req model.ScoreRequest) (model.ScoreResult, error)

	// Healthy reports whether the model can serve, via a cheap canary
	// prediction that does not mutate model state.
	Healthy(ctx context.Context) bool

	// ThreadSafe reports whether Predict may be invoked concurrently.
	// When false the dispatcher serializes access.
	ThreadSafe() bool

	// Kind identifies the adapter, e.g. "identity".
	Kind() string
}

// Spec carries the static configuration Load needs to build a Predictor.
type Spec struct {
	Kind       string
	Expr       string    // CEL source, cel kind only
	Weights    []float64 // linear kind only
	Bias       float64   // linear kind only
	ThreadSafe bool
	Canary     []float64 // feature vector for health checks
}

// Load builds the configured Predictor. Called once at startup; any error
// wraps ErrLoad and must abort the process before it begins serving.
func Load(ctx context.Context, spec Spec) (Predictor, error) {
	if len(spec.Canary) == 0 {
		spec.Canary = []float64{0}
	}

	switch spec.Kind {
	case "identity":
		return newIdentity(spec), nil
	case "linear":
		return newLinear(spec)
	case "cel":
		return newCEL(ctx, spec)
	default:
		return nil, fmt.Errorf("%w: unknown model kind %q", ErrLoad, spec.Kind)
	}
}

// base holds the capability flags shared by all adapters.
type base struct {
	kind       string
	threadSafe bool
	canary     []float64
}

func (b *base) ThreadSafe() bool { return b.threadSafe }
func (b *base) Kind() string     { return b.kind }

// canaryCheck runs a canary prediction against p and reports success.
func canaryCheck(ctx context.Context, p Predictor, canary []float64) bool {
	metrics.RecordModelHealthCheck()
	_, err := p.Predict(ctx, model.ScoreRequest{Features: canary})
	metrics.UpdateModelReady(err == nil)
	return err == nil
}
