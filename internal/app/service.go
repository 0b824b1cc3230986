// Package service orchestrates passing network analyses on behalf of the
// HTTP API: it derives pass sets, builds the network and annotates it.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/passnet/internal/adapters/worker"
	"github.com/okian/passnet/internal/domain/model"
	"github.com/okian/passnet/internal/domain/network"
	"github.com/okian/passnet/internal/domain/passes"
	"github.com/okian/passnet/pkg/logger"
	"github.com/okian/passnet/pkg/metrics"
)

// MetricSet selects the node metrics of one analysis. Nil slices and zero
// attributes fall back to the service defaults; empty non-nil slices
// disable that family.
type MetricSet struct {
	Strength     []network.Direction
	Centralities []network.Kind
	Weight       network.EdgeAttribute
	Cost         network.EdgeAttribute
}

// AnalysisRequest asks for the network of an already filtered pass set.
type AnalysisRequest struct {
	Passes  []model.PassEvent
	Metrics MetricSet
}

// MatchRequest asks for the network of one team in one phase of a match.
type MatchRequest struct {
	Events    []model.MatchEvent
	Lineup    []model.LineupEntry
	Team      string
	Phase     int
	Third     passes.Third         // zero keeps the whole pitch
	Direction passes.PassDirection // zero keeps every direction
	Progress  passes.Progression   // zero keeps every pass
	Metrics   MetricSet
}

// Analysis is the outcome of one successful analysis.
type Analysis struct {
	ID       string
	Graph    *network.Graph
	Passes   int
	Metrics  MetricSet
	Duration time.Duration
}

// Service implements the API dependencies for network analysis. It holds no
// per-analysis state and is safe for concurrent use.
type Service struct {
	logger  logger.Logger
	pool    *worker.Pool
	workers int

	distanceScale    float64
	pitchLength      float64
	pitchWidth       float64
	lateralMinLength float64
	defaults         MetricSet

	analyses atomic.Int64
	failures atomic.Int64
	passes   atomic.Int64
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		distanceScale:    10_000,
		pitchLength:      120,
		pitchWidth:       80,
		lateralMinLength: passes.DefaultLateralMinLength,
		defaults:         defaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.pool = worker.NewPool(
		worker.WithSize(s.workers),
		worker.WithName("phases"),
		worker.WithLogger(s.logger),
	)
	return s
}

// Analyze builds the network of req.Passes and computes the requested
// strengths and centralities, strengths first. Any failure discards the
// whole analysis.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set, err := s.resolve(req.Metrics)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordBuildError(reason(err))
		return nil, err
	}

	id := uuid.NewString()
	log := s.logger.With(logger.String("analysis", id))
	start := time.Now()

	g, err := network.Build(req.Passes, network.WithDistanceScale(s.distanceScale))
	if err != nil {
		return nil, s.fail(ctx, log, "build network", err)
	}
	metrics.RecordNetworkBuilt(len(req.Passes), g.Order(), g.Size(), millis(time.Since(start)))
	log.Debug(ctx, "network built",
		logger.Int("passes", len(req.Passes)),
		logger.Int("nodes", g.Order()),
		logger.Int("edges", g.Size()),
	)

	for _, d := range set.Strength {
		t := time.Now()
		if err := network.Strength(g, d, set.Weight); err != nil {
			return nil, s.fail(ctx, log, "strength "+d.String(), err)
		}
		attr, _ := d.Attribute()
		metrics.RecordMetricComputed(string(attr), millis(time.Since(t)))
	}
	for _, k := range set.Centralities {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(ctx, log, "centrality "+k.String(), err)
		}
		t := time.Now()
		if err := network.Centrality(g, k, set.Cost); err != nil {
			return nil, s.fail(ctx, log, "centrality "+k.String(), err)
		}
		metrics.RecordMetricComputed(k.String(), millis(time.Since(t)))
	}

	a := &Analysis{
		ID:       id,
		Graph:    g,
		Passes:   len(req.Passes),
		Metrics:  set,
		Duration: time.Since(start),
	}
	s.analyses.Add(1)
	s.passes.Add(int64(len(req.Passes)))
	log.Info(ctx, "analysis completed",
		logger.Int("nodes", g.Order()),
		logger.Int("edges", g.Size()),
		logger.Duration("duration", a.Duration),
	)
	return a, nil
}

// AnalyzeMatch selects the completed passes of req.Team in phase req.Phase,
// applies the optional third, direction and progression filters and
// analyzes the result.
func (s *Service) AnalyzeMatch(ctx context.Context, req MatchRequest) (*Analysis, error) {
	ps, err := s.matchPasses(req)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordBuildError(reason(err))
		s.logger.Warn(ctx, "pass selection failed",
			logger.String("team", req.Team),
			logger.Int("phase", req.Phase),
			logger.Error(err),
		)
		return nil, err
	}
	return s.Analyze(ctx, AnalysisRequest{Passes: ps, Metrics: req.Metrics})
}

// AnalyzePhases analyzes every phase of req.Team concurrently; req.Phase is
// ignored. The result holds one analysis per phase, in phase order, and a
// failing phase fails the whole batch.
func (s *Service) AnalyzePhases(ctx context.Context, req MatchRequest) ([]*Analysis, error) {
	if req.Team == "" {
		s.failures.Add(1)
		return nil, fmt.Errorf("team is required: %w", ErrInvalidRequest)
	}
	n := passes.Phases(req.Events, req.Team)
	out := make([]*Analysis, n)
	jobs := make([]worker.Job, n)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			r := req
			r.Phase = i
			a, err := s.AnalyzeMatch(ctx, r)
			if err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
			out[i] = a
			return nil
		}
	}
	if err := s.pool.Run(ctx, jobs); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) matchPasses(req MatchRequest) ([]model.PassEvent, error) {
	if req.Team == "" {
		return nil, fmt.Errorf("team is required: %w", ErrInvalidRequest)
	}
	bounds := passes.PhaseBoundaries(req.Events, req.Team)
	start, end, err := passes.PhaseWindow(bounds, req.Phase, streamEnd(req.Events))
	if err != nil {
		return nil, err
	}
	ps, err := passes.Completed(req.Events, req.Lineup, req.Team, start, end)
	if err != nil {
		return nil, err
	}
	if err := passes.OnPitch(ps, s.pitchLength, s.pitchWidth); err != nil {
		return nil, err
	}
	if req.Third != 0 {
		if ps, err = passes.InThird(ps, req.Third, s.pitchLength); err != nil {
			return nil, err
		}
	}
	if req.Direction != 0 {
		if ps, err = passes.ByDirection(ps, req.Direction, s.lateralMinLength); err != nil {
			return nil, err
		}
	}
	if req.Progress != 0 {
		first, second := passes.Thirds(s.pitchLength)
		if ps, err = passes.Progressive(ps, req.Progress, first, second); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// Phases returns the phase boundaries of team in events.
func (s *Service) Phases(ctx context.Context, team string, events []model.MatchEvent) ([]int, error) {
	if team == "" {
		return nil, fmt.Errorf("team is required: %w", ErrInvalidRequest)
	}
	bounds := passes.PhaseBoundaries(events, team)
	s.logger.Debug(ctx, "phases computed",
		logger.String("team", team),
		logger.Int("phases", len(bounds)+1),
	)
	return bounds, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"analyses":       s.analyses.Load(),
		"failures":       s.failures.Load(),
		"passesAnalyzed": s.passes.Load(),
		"distanceScale":  s.distanceScale,
		"workers":        s.pool.Size(),
		"pitchLength":    s.pitchLength,
		"pitchWidth":     s.pitchWidth,
	}
}

// resolve fills defaults into set and rejects invalid members before any
// work starts.
func (s *Service) resolve(set MetricSet) (MetricSet, error) {
	if set.Strength == nil {
		set.Strength = s.defaults.Strength
	}
	if set.Centralities == nil {
		set.Centralities = s.defaults.Centralities
	}
	if set.Weight == 0 {
		set.Weight = s.defaults.Weight
	}
	if set.Cost == 0 {
		set.Cost = s.defaults.Cost
	}
	for _, d := range set.Strength {
		if _, err := d.Attribute(); err != nil {
			return set, err
		}
	}
	for _, k := range set.Centralities {
		if _, err := k.Attribute(); err != nil {
			return set, err
		}
	}
	for _, a := range []network.EdgeAttribute{set.Weight, set.Cost} {
		if _, err := network.ParseEdgeAttribute(a.String()); err != nil {
			return set, err
		}
	}
	return set, nil
}

func (s *Service) fail(ctx context.Context, log logger.Logger, op string, err error) error {
	s.failures.Add(1)
	metrics.RecordBuildError(reason(err))
	log.Warn(ctx, "analysis failed", logger.String("op", op), logger.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

// reason maps an analysis error to a bounded metric label.
func reason(err error) string {
	switch {
	case errors.Is(err, network.ErrInvalidPass):
		return "invalid_pass"
	case errors.Is(err, network.ErrUndefinedPosition):
		return "undefined_position"
	case errors.Is(err, network.ErrUnsupportedMetric), errors.Is(err, passes.ErrUnsupported):
		return "unsupported"
	case errors.Is(err, passes.ErrPhaseOutOfRange):
		return "phase_out_of_range"
	case errors.Is(err, passes.ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, passes.ErrOffPitch):
		return "off_pitch"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}

// streamEnd returns one past the largest event index.
func streamEnd(events []model.MatchEvent) int {
	end := len(events)
	for _, e := range events {
		if e.Index >= end {
			end = e.Index + 1
		}
	}
	return end
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
