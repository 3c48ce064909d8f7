package nodes

import "github.com/rs/zerolog"

// Option is a set of configurable parameters for the reducer. If left empty,
// defaults will be used
type Option func(r *reducer)

// WithLogger sets the logger used to report each evaluated divisor and the
// final reduction. Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *reducer) {
		r.logger = logger
	}
}
