// Package model contains domain models passed between layers.
package model

import "time"

// ScoreRequest is a validated feature vector ready for prediction.
// Invariants: Features is non-empty; FeatureNames, when present, has the
// same length as Features.
type ScoreRequest struct {
	Features     []float64 // the "X" array from the wire payload
	FeatureNames []string  // optional parallel labels
}

// ScoreResult holds the model output for a single request.
// Immutable once produced.
type ScoreResult struct {
	Scores    []float64     // model output, shape depends on the model kind
	ModelKind string        // adapter that produced the scores
	Elapsed   time.Duration // predict wall time
}

// Outcome statuses. Every request resolves to exactly one.
const (
	StatusOK           = "ok"
	StatusBadInput     = "bad_input"
	StatusOverloaded   = "overloaded"
	StatusTimeout      = "timeout"
	StatusModelFailure = "model_failure"
)

// Outcome records the terminal result of a score request for observability.
type Outcome struct {
	RequestID    string    `json:"request_id"`
	ReceivedAt   time.Time `json:"received_at"`
	Status       string    `json:"status"`
	DurationMS   float64   `json:"duration_ms"`
	FeatureCount int       `json:"feature_count"`
	Detail       string    `json:"detail,omitempty"`
}
