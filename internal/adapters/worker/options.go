package worker

import "github.com/okian/passnet/pkg/logger"

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithSize sets the maximum number of concurrently running jobs.
func WithSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.size = n
		}
	}
}

// WithName sets the pool name used for logging and metrics.
func WithName(name string) Option {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
