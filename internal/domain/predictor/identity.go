package predictor

import (
	"context"
	"time"

	"github.com/modelserve/scored/internal/domain/model"
)

// Identity echoes the feature vector back as scores. It is the baseline
// model used for smoke testing the serving path end to end.
type Identity struct {
	base
}

func newIdentity(spec Spec) *Identity {
	return &Identity{
		base: base{
			kind:       "identity",
			threadSafe: spec.ThreadSafe,
			canary:     spec.Canary,
		},
	}
}

// Predict returns scores equal to the input features.
func (p *Identity) Predict(_ context.Context, req model.ScoreRequest) (model.ScoreResult, error) {
	start := time.Now()

	// Copy so the result stays immutable even if the caller reuses the request.
	scores := make([]float64, len(req.Features))
	copy(scores, req.Features)

	return model.ScoreResult{
		Scores:    scores,
		ModelKind: p.kind,
		Elapsed:   time.Since(start),
	}, nil
}

// Healthy runs a canary prediction.
func (p *Identity) Healthy(ctx context.Context) bool {
	return canaryCheck(ctx, p, p.canary)
}
