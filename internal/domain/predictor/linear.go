package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/modelserve/scored/internal/domain/model"
)

// Linear scores a feature vector as the dot product with a fixed weight
// vector plus a bias. Weights are immutable after load.
type Linear struct {
	base
	weights []float64
	bias    float64
}

func newLinear(spec Spec) (*Linear, error) {
	if len(spec.Weights) == 0 {
		return nil, fmt.Errorf("%w: linear model requires weights", ErrLoad)
	}

	// Copy the weights so later config mutation cannot reach the handle.
	weights := make([]float64, len(spec.Weights))
	copy(weights, spec.Weights)

	return &Linear{
		base: base{
			kind:       "linear",
			threadSafe: spec.ThreadSafe,
			canary:     spec.Canary,
		},
		weights: weights,
		bias:    spec.Bias,
	}, nil
}

// Predict computes weights.x + bias. The feature vector must match the
// weight vector length.
func (p *Linear) Predict(_ context.Context, req model.ScoreRequest) (model.ScoreResult, error) {
	start := time.Now()

	if len(req.Features) != len(p.weights) {
		return model.ScoreResult{}, fmt.Errorf("%w: got %d features, model expects %d",
			ErrPrediction, len(req.Features), len(p.weights))
	}

	sum := p.bias
	for i, x := range req.Features {
		sum += p.weights[i] * x
	}

	return model.ScoreResult{
		Scores:    []float64{sum},
		ModelKind: p.kind,
		Elapsed:   time.Since(start),
	}, nil
}

// Healthy runs a canary prediction. The canary must match the weight
// length for a linear model, so load substitutes a zero vector of the
// right shape when the configured canary does not fit.
func (p *Linear) Healthy(ctx context.Context) bool {
	canary := p.canary
	if len(canary) != len(p.weights) {
		canary = make([]float64, len(p.weights))
	}
	return canaryCheck(ctx, p, canary)
}
