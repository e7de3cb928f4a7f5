package rangecache

import "log/slog"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for debug-level cache activity. Without it
// logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}
