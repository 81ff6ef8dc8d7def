package store

import "codemix/internal/platform/logger"

// Option configures Open
type Option func(*Store) error

// WithLogger routes backend logs, such as the pg query tracer, to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log.With().Str("component", "store").Logger()
		return nil
	}
}
