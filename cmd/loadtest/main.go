package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/passnet/internal/loadtest"
	"github.com/okian/passnet/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests    = 200
	defaultPasses      = 600
	defaultSquad       = 14
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		requests = flag.Int("requests", defaultRequests, "Number of pass sets to submit")
		passes   = flag.Int("passes", defaultPasses, "Passes per pass set")
		squad    = flag.Int("squad", defaultSquad, "Distinct players per pass set")
		workers  = flag.Int("workers", runtime.NumCPU(), "Concurrent requests")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		scale    = flag.Float64("scale", 10_000, "Distance scale the service uses")
		seed     = flag.Uint64("seed", 1, "Generator seed")
		output   = flag.String("output", "", "Write the generated pass sets to this JSON file")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	stats, err := loadtest.Run(ctx, &loadtest.Config{
		BaseURL:       *baseURL,
		Requests:      *requests,
		Passes:        *passes,
		Squad:         *squad,
		Workers:       *workers,
		Timeout:       *timeout,
		DistanceScale: *scale,
		Seed:          *seed,
		OutputFile:    *output,
	})
	if err != nil {
		logger.Get().Error(ctx, "load test failed", logger.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
	if stats.Failed > 0 || stats.Inconsistent > 0 {
		cancel()
		stop()
		os.Exit(2)
	}
}
