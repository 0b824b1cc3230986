package network

import (
	"fmt"
	"strings"
)

// Direction selects which incident edges count toward node strength.
type Direction int

// Strength directions. The zero value is invalid.
const (
	DirectionIn Direction = iota + 1
	DirectionOut
	DirectionTotal
)

// ParseDirection maps "in", "out" and "total" (alias "none") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return DirectionIn, nil
	case "out":
		return DirectionOut, nil
	case "total", "none":
		return DirectionTotal, nil
	}
	return 0, fmt.Errorf("direction %q: %w", s, ErrUnsupportedMetric)
}

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionTotal:
		return "total"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Attribute returns the node attribute the direction is stored under.
func (d Direction) Attribute() (Attribute, error) {
	switch d {
	case DirectionIn:
		return AttrInStrength, nil
	case DirectionOut:
		return AttrOutStrength, nil
	case DirectionTotal:
		return AttrStrength, nil
	}
	return "", fmt.Errorf("direction %s: %w", d, ErrUnsupportedMetric)
}

// Kind selects a distance-based centrality.
type Kind int

// Centrality kinds. The zero value is invalid.
const (
	KindBetweenness Kind = iota + 1
	KindInHarmonic
	KindOutHarmonic
)

// ParseKind maps "betweenness", "in-harmonic" and "out-harmonic"
// (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "betweenness":
		return KindBetweenness, nil
	case "in-harmonic":
		return KindInHarmonic, nil
	case "out-harmonic":
		return KindOutHarmonic, nil
	}
	return 0, fmt.Errorf("centrality %q: %w", s, ErrUnsupportedMetric)
}

func (k Kind) String() string {
	if a, err := k.Attribute(); err == nil {
		return string(a)
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Attribute returns the node attribute the centrality is stored under.
func (k Kind) Attribute() (Attribute, error) {
	switch k {
	case KindBetweenness:
		return AttrBetweenness, nil
	case KindInHarmonic:
		return AttrInHarmonic, nil
	case KindOutHarmonic:
		return AttrOutHarmonic, nil
	}
	return "", fmt.Errorf("centrality %d: %w", int(k), ErrUnsupportedMetric)
}

// EdgeAttribute names the per-edge value read as weight or cost.
type EdgeAttribute int

// Edge attributes. The zero value is invalid.
const (
	EdgeIntensity EdgeAttribute = iota + 1
	EdgeDistance
)

// ParseEdgeAttribute maps "intensity" and "distance" to an EdgeAttribute.
func ParseEdgeAttribute(s string) (EdgeAttribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intensity":
		return EdgeIntensity, nil
	case "distance":
		return EdgeDistance, nil
	}
	return 0, fmt.Errorf("edge attribute %q: %w", s, ErrUnsupportedMetric)
}

func (a EdgeAttribute) String() string {
	switch a {
	case EdgeIntensity:
		return "intensity"
	case EdgeDistance:
		return "distance"
	}
	return fmt.Sprintf("EdgeAttribute(%d)", int(a))
}

// value reads a from e.
func (a EdgeAttribute) value(e Edge) float64 {
	if a == EdgeIntensity {
		return float64(e.Intensity)
	}
	return e.Distance
}

func (a EdgeAttribute) valid() bool {
	return a == EdgeIntensity || a == EdgeDistance
}
