package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/okian/passnet/internal/adapters/worker"
	"github.com/okian/passnet/pkg/logger"
)

const outputFilePermission = 0o600

// Run executes a complete load test and returns its statistics. Transport
// failures and inconsistent networks are counted, not returned; an error
// means the run itself could not proceed.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("loadtest")
	log.Info(ctx, "starting passnet load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("passes", cfg.Passes),
		logger.Int("workers", cfg.Workers),
	)
	start := time.Now()
	client := newHTTPClient(cfg.Timeout)

	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	sets := generate(cfg)
	if cfg.OutputFile != "" {
		if err := save(cfg.OutputFile, sets); err != nil {
			log.Warn(ctx, "failed to save pass sets", logger.Error(err))
		}
	}

	var successful, failed, inconsistent atomic.Int64
	url := cfg.BaseURL + "/networks"
	jobs := make([]worker.Job, len(sets))
	for i, set := range sets {
		jobs[i] = func(ctx context.Context) error {
			var n Network
			body := map[string]any{"passes": set.Passes}
			if err := client.postJSON(ctx, url, body, &n); err != nil {
				failed.Add(1)
				log.Warn(ctx, "request failed", logger.String("label", set.Label), logger.Error(err))
				return nil
			}
			if err := verify(set, n, cfg.DistanceScale); err != nil {
				inconsistent.Add(1)
				log.Error(ctx, "inconsistent network", logger.String("label", set.Label), logger.Error(err))
				return nil
			}
			successful.Add(1)
			return nil
		}
	}

	pool := worker.NewPool(worker.WithSize(cfg.Workers), worker.WithName("loadtest"), worker.WithLogger(log))
	if err := pool.Run(ctx, jobs); err != nil {
		return nil, err
	}

	stats := &Stats{
		Submitted:    len(sets),
		Successful:   int(successful.Load()),
		Failed:       int(failed.Load()),
		Inconsistent: int(inconsistent.Load()),
		Duration:     time.Since(start),
	}
	log.Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("inconsistent", stats.Inconsistent),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// checkHealth verifies the service is running.
func checkHealth(ctx context.Context, client *httpClient, baseURL string) error {
	status, err := client.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	return nil
}

// save writes the generated pass sets as a JSON array.
func save(path string, sets []PassSet) error {
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pass sets: %w", err)
	}
	if err := os.WriteFile(path, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
