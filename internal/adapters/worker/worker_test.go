package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/passnet/internal/adapters/worker"
	logging "github.com/okian/passnet/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logging.Init(); err != nil {
		panic(err)
	}
}

func TestPool_Run(t *testing.T) {
	convey.Convey("Given a pool of two workers", t, func() {
		p := worker.NewPool(worker.WithSize(2), worker.WithName("test"))
		ctx := context.Background()

		convey.So(p.Size(), convey.ShouldEqual, 2)

		convey.Convey("When running jobs that succeed", func() {
			results := make([]int, 10)
			jobs := make([]worker.Job, len(results))
			for i := range jobs {
				jobs[i] = func(context.Context) error {
					results[i] = i * i
					return nil
				}
			}
			err := p.Run(ctx, jobs)

			convey.Convey("Then every job runs once", func() {
				convey.So(err, convey.ShouldBeNil)
				for i, r := range results {
					convey.So(r, convey.ShouldEqual, i*i)
				}
			})
		})

		convey.Convey("When jobs run concurrently", func() {
			var running, peak atomic.Int32
			jobs := make([]worker.Job, 6)
			for i := range jobs {
				jobs[i] = func(context.Context) error {
					n := running.Add(1)
					for {
						old := peak.Load()
						if n <= old || peak.CompareAndSwap(old, n) {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
					running.Add(-1)
					return nil
				}
			}
			err := p.Run(ctx, jobs)

			convey.Convey("Then no more than the pool size run at once", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(peak.Load(), convey.ShouldBeLessThanOrEqualTo, 2)
			})
		})

		convey.Convey("When a job fails", func() {
			boom := errors.New("boom")
			jobs := []worker.Job{
				func(context.Context) error { return boom },
				func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				},
			}
			err := p.Run(ctx, jobs)

			convey.Convey("Then its error is returned and the others are canceled", func() {
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When there are no jobs", func() {
			convey.So(p.Run(ctx, nil), convey.ShouldBeNil)
		})
	})
}
