package api

import "github.com/okian/passnet/pkg/logger"

const defaultMaxPasses = 20_000

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxPasses caps the number of passes or events accepted per request.
func WithMaxPasses(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}
