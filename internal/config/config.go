// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile enables a rotating file sink when non-empty.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Model selects the adapter kind: identity, linear, or cel.
	Model string `koanf:"model"`

	// ModelExpr holds the CEL source for the cel model kind.
	ModelExpr string `koanf:"model_expr"`

	// LinearWeights and LinearBias parameterize the linear model kind.
	LinearWeights []float64 `koanf:"linear_weights"`
	LinearBias    float64   `koanf:"linear_bias"`

	// ThreadSafe declares whether predict may be invoked concurrently.
	// Defaults to false: exclusive access is the safe assumption.
	ThreadSafe bool `koanf:"thread_safe"`

	// PredictTimeoutMS bounds a single predict call in milliseconds.
	PredictTimeoutMS int `koanf:"predict_timeout_ms"`

	// GateCapacity bounds the number of concurrently admitted requests.
	GateCapacity int `koanf:"gate_capacity"`

	// MaxFeatures caps the accepted feature vector length.
	MaxFeatures int `koanf:"max_features"`

	// RecentSize bounds the recent-outcome store.
	RecentSize int `koanf:"recent_size"`

	// MaxRequestsLimit caps GET /requests?limit.
	MaxRequestsLimit int `koanf:"max_requests_limit"`

	// Canary is the feature vector used by readiness checks.
	Canary []float64 `koanf:"canary"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Model:            "identity",
		ThreadSafe:       false,
		PredictTimeoutMS: 2_000,
		GateCapacity:     runtime.NumCPU() * 16,
		MaxFeatures:      10_000,
		RecentSize:       256,
		MaxRequestsLimit: 100,
		Canary:           []float64{0},
	}
	return c
}
