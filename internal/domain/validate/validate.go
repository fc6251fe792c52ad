// Package validate parses and normalizes raw score payloads.
//
// Parsing is deterministic and stateless: the same raw payload always
// yields the same ScoreRequest or the same error.
package validate

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/modelserve/scored/internal/domain/model"
)

// Default validation limits.
const (
	defaultMaxFeatures = 10_000
)

// Validator parses raw payloads into ScoreRequests.
type Validator struct {
	maxFeatures int
}

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithMaxFeatures caps the accepted feature vector length.
func WithMaxFeatures(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxFeatures = n
		}
	}
}

// New creates a Validator with configuration options.
func New(opts ...Option) *Validator {
	v := &Validator{
		maxFeatures: defaultMaxFeatures,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Parse validates a raw JSON payload and produces a normalized ScoreRequest.
// Failures wrap the package sentinels so callers can classify with errors.Is.
func (v *Validator) Parse(raw []byte) (model.ScoreRequest, error) {
	var wire model.WireRequest
	if err := sonic.Unmarshal(raw, &wire); err != nil {
		return model.ScoreRequest{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if len(wire.X) == 0 || string(wire.X) == "null" {
		return model.ScoreRequest{}, fmt.Errorf("%w: field 'X' is required", ErrMissingFeatures)
	}

	var features []float64
	if err := sonic.Unmarshal(wire.X, &features); err != nil {
		return model.ScoreRequest{}, fmt.Errorf("%w: field 'X' must be an array of numbers", ErrNotNumeric)
	}

	switch {
	case len(features) == 0:
		return model.ScoreRequest{}, fmt.Errorf("%w: field 'X' must not be empty", ErrEmptyFeatures)
	case len(features) > v.maxFeatures:
		return model.ScoreRequest{}, fmt.Errorf("%w: got %d features, limit is %d", ErrTooManyFeatures, len(features), v.maxFeatures)
	case len(wire.FeatureNames) > 0 && len(wire.FeatureNames) != len(features):
		return model.ScoreRequest{}, fmt.Errorf("%w: %d names for %d features", ErrNameMismatch, len(wire.FeatureNames), len(features))
	}

	return model.ScoreRequest{
		Features:     features,
		FeatureNames: wire.FeatureNames,
	}, nil
}
