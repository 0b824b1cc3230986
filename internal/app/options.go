package service

import (
	"github.com/okian/passnet/internal/domain/network"
	"github.com/okian/passnet/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers sets how many phases of a match are analyzed concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDistanceScale sets the numerator of the edge distance transform.
func WithDistanceScale(scale float64) Option {
	return func(s *Service) {
		if scale > 0 {
			s.distanceScale = scale
		}
	}
}

// WithDefaultMetrics sets the metrics computed when a request names none.
// Zero-valued fields of set keep the current defaults.
func WithDefaultMetrics(set MetricSet) Option {
	return func(s *Service) {
		if set.Strength != nil {
			s.defaults.Strength = set.Strength
		}
		if set.Centralities != nil {
			s.defaults.Centralities = set.Centralities
		}
		if set.Weight != 0 {
			s.defaults.Weight = set.Weight
		}
		if set.Cost != 0 {
			s.defaults.Cost = set.Cost
		}
	}
}

// WithPitchLength sets the pitch length used to split it into thirds.
func WithPitchLength(length float64) Option {
	return func(s *Service) {
		if length > 0 {
			s.pitchLength = length
		}
	}
}

// WithPitchWidth sets the pitch width used to bound pass coordinates.
func WithPitchWidth(width float64) Option {
	return func(s *Service) {
		if width > 0 {
			s.pitchWidth = width
		}
	}
}

// WithLateralMinLength sets the minimum lateral pass length in metres.
func WithLateralMinLength(metres float64) Option {
	return func(s *Service) {
		if metres >= 0 {
			s.lateralMinLength = metres
		}
	}
}

func defaultMetrics() MetricSet {
	return MetricSet{
		Strength:     []network.Direction{network.DirectionIn, network.DirectionOut, network.DirectionTotal},
		Centralities: []network.Kind{network.KindBetweenness, network.KindInHarmonic, network.KindOutHarmonic},
		Weight:       network.EdgeIntensity,
		Cost:         network.EdgeDistance,
	}
}
