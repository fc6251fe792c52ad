package validate

import "errors"

// Sentinel kinds for validation errors.
var (
	ErrMalformed       = errors.New("malformed payload")
	ErrMissingFeatures = errors.New("missing features")
	ErrEmptyFeatures   = errors.New("empty features")
	ErrNotNumeric      = errors.New("non-numeric features")
	ErrNameMismatch    = errors.New("feature name mismatch")
	ErrTooManyFeatures = errors.New("too many features")
)

// Reason maps a validation error to a stable label for metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingFeatures):
		return "missing_features"
	case errors.Is(err, ErrEmptyFeatures):
		return "empty_features"
	case errors.Is(err, ErrNotNumeric):
		return "not_numeric"
	case errors.Is(err, ErrNameMismatch):
		return "name_mismatch"
	case errors.Is(err, ErrTooManyFeatures):
		return "too_many_features"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
