package dispatch

import (
	"time"

	"github.com/modelserve/scored/internal/domain/validate"
	"github.com/modelserve/scored/pkg/logger"
)

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithGateCapacity bounds the number of concurrently admitted requests.
func WithGateCapacity(capacity int) Option {
	return func(d *Dispatcher) {
		if capacity > 0 {
			d.gateCapacity = capacity
		}
	}
}

// WithTimeout bounds a single predict call, including any wait for
// exclusive model access.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithValidator sets a custom payload validator.
func WithValidator(v *validate.Validator) Option {
	return func(d *Dispatcher) {
		if v != nil {
			d.validator = v
		}
	}
}

// WithExclusive forces exclusive-access serialization regardless of the
// model's advertised capability.
func WithExclusive(exclusive bool) Option {
	return func(d *Dispatcher) {
		d.forceExclusive = exclusive
	}
}

// WithRecorder sets the sink for terminal request outcomes.
func WithRecorder(r OutcomeRecorder) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}
