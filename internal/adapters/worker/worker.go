// Package worker runs bounded batches of independent jobs.
package worker

import (
	"context"
	"runtime"
	"time"

	"github.com/okian/passnet/pkg/logger"
	"github.com/okian/passnet/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Job is one unit of work. Jobs of a batch must not share mutable state.
type Job func(ctx context.Context) error

// Pool runs jobs on a bounded number of goroutines. A Pool holds no
// goroutines between batches and is safe for concurrent use.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a pool sized to the number of CPUs by default.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		size: runtime.NumCPU(),
		name: "pool",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("worker")
	}
	return p
}

// Size returns the concurrency limit.
func (p *Pool) Size() int { return p.size }

// Run executes jobs and waits for all of them. The first failure cancels
// the context of the remaining jobs and is returned.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				metrics.RecordJob(p.name, "skipped", 0)
				return err
			}
			start := time.Now()
			err := job(gctx)
			status := "ok"
			if err != nil {
				status = "error"
				p.logger.Debug(gctx, "job failed", logger.Int("job", i), logger.Error(err))
			}
			metrics.RecordJob(p.name, status, float64(time.Since(start).Microseconds())/1000)
			return err
		})
	}
	return g.Wait()
}
