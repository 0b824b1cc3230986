package passes

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/passnet/internal/domain/model"
)

// Pass direction classification constants. Coordinates are in yards.
const (
	metresPerYard = 0.9144
	// DefaultLateralMinLength is the shortest lateral pass, in metres, that
	// counts as lateral rather than as a short lay-off.
	DefaultLateralMinLength = 12.0
)

// fwdBound is cos(pi/4): passes within 45 degrees of the x axis are forward
// or backward.
var fwdBound = math.Cos(math.Pi / 4)

// PassDirection classifies a pass by the angle of its vector.
type PassDirection int

// Pass directions. The zero value means no direction filter.
const (
	Forward PassDirection = iota + 1
	Backward
	Lateral
)

// ParsePassDirection maps "fwd", "back" and "lat" to a PassDirection. An
// empty string yields the zero value.
func ParsePassDirection(s string) (PassDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "fwd", "forward":
		return Forward, nil
	case "back", "backward":
		return Backward, nil
	case "lat", "lateral":
		return Lateral, nil
	}
	return 0, fmt.Errorf("pass direction %q: %w", s, ErrUnsupported)
}

// Cosine returns the cosine of the angle between the pass and the x axis.
// ok is false for zero-length passes.
func Cosine(p model.PassEvent) (cos float64, ok bool) {
	norm := p.Length()
	if norm == 0 {
		return 0, false
	}
	return (p.EndX - p.X) / norm, true
}

// ByDirection keeps passes in direction d. Lateral passes must be longer
// than minLengthM metres.
func ByDirection(passes []model.PassEvent, d PassDirection, minLengthM float64) ([]model.PassEvent, error) {
	var keep func(cos float64, p model.PassEvent) bool
	switch d {
	case Forward:
		keep = func(cos float64, _ model.PassEvent) bool { return cos > fwdBound }
	case Backward:
		keep = func(cos float64, _ model.PassEvent) bool { return cos < -fwdBound }
	case Lateral:
		keep = func(cos float64, p model.PassEvent) bool {
			return cos >= -fwdBound && cos <= fwdBound && p.Length()*metresPerYard > minLengthM
		}
	default:
		return nil, fmt.Errorf("pass direction %d: %w", int(d), ErrUnsupported)
	}
	return filter(passes, func(p model.PassEvent) bool {
		cos, ok := Cosine(p)
		return ok && keep(cos, p)
	}), nil
}
