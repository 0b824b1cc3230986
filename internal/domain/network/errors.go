package network

import "errors"

// Sentinel kinds for network construction and metric errors.
var (
	// ErrInvalidPass reports a pass without passer/receiver token or with
	// non-finite coordinates.
	ErrInvalidPass = errors.New("invalid pass event")
	// ErrUndefinedPosition reports a node without any positional sample.
	ErrUndefinedPosition = errors.New("undefined average position")
	// ErrUnsupportedMetric reports an unknown direction, centrality kind or
	// edge attribute.
	ErrUnsupportedMetric = errors.New("unsupported metric")
)
