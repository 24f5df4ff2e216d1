package matching

import "errors"

var (
	// ErrInvalidStrategy is returned for unknown strategy names.
	ErrInvalidStrategy = errors.New("invalid matching strategy")
	// ErrModelUnavailable is returned when a strategy depends on a model that
	// is not configured or failed to load.
	ErrModelUnavailable = errors.New("model unavailable")
)
