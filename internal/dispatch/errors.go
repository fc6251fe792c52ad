package dispatch

import "errors"

// Sentinel kinds for the score error taxonomy. Every request resolves to
// success or exactly one of these.
var (
	// ErrBadInput marks a client-caused validation failure. Never retried.
	ErrBadInput = errors.New("bad input")

	// ErrOverloaded marks an admission gate rejection. Transient; the
	// caller may retry with backoff, the dispatcher itself never does.
	ErrOverloaded = errors.New("overloaded")

	// ErrTimeout marks a predict call that exceeded the deadline. The
	// outcome of the underlying call is unknown, so it is never retried.
	ErrTimeout = errors.New("timeout")

	// ErrModelFailure marks an adapter-internal fault, surfaced with detail.
	ErrModelFailure = errors.New("model failure")
)
