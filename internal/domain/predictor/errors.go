package predictor

import "errors"

// Sentinel kinds for predictor errors.
var (
	// ErrLoad marks a model load failure; fatal at startup.
	ErrLoad = errors.New("model load failed")

	// ErrPrediction marks an adapter-internal predict failure.
	ErrPrediction = errors.New("prediction failed")
)
