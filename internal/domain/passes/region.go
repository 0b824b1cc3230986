package passes

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/passnet/internal/domain/model"
)

// Third is a longitudinal third of the pitch, measured from the analysed
// team's own goal line.
type Third int

// Pitch thirds. The zero value means no regional filter.
const (
	ThirdDefensive Third = iota + 1
	ThirdMiddle
	ThirdAttacking
)

// ParseThird maps "def", "mid" and "att" to a Third. An empty string yields
// the zero Third.
func ParseThird(s string) (Third, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "def", "defensive":
		return ThirdDefensive, nil
	case "mid", "middle":
		return ThirdMiddle, nil
	case "att", "attacking":
		return ThirdAttacking, nil
	}
	return 0, fmt.Errorf("third %q: %w", s, ErrUnsupported)
}

// Thirds returns the x coordinates separating the three thirds of a pitch of
// the given length, rounded to two decimals.
func Thirds(length float64) (first, second float64) {
	return math.Round(length/3*100) / 100, math.Round(2*length/3*100) / 100
}

// InThird keeps passes that start inside third t. The attacking third
// includes the far goal line.
func InThird(passes []model.PassEvent, t Third, length float64) ([]model.PassEvent, error) {
	first, second := Thirds(length)
	var keep func(x float64) bool
	switch t {
	case ThirdDefensive:
		keep = func(x float64) bool { return x >= 0 && x < first }
	case ThirdMiddle:
		keep = func(x float64) bool { return x >= first && x < second }
	case ThirdAttacking:
		keep = func(x float64) bool { return x >= second && x <= length }
	default:
		return nil, fmt.Errorf("third %d: %w", int(t), ErrUnsupported)
	}
	return filter(passes, func(p model.PassEvent) bool { return keep(p.X) }), nil
}

// OnPitch checks that every pass starts and ends inside a pitch of the given
// length and width, lines included. Coordinates outside it mean the events
// use another coordinate system than the one the filters assume.
func OnPitch(passes []model.PassEvent, length, width float64) error {
	in := func(x, y float64) bool { return x >= 0 && x <= length && y >= 0 && y <= width }
	for i, p := range passes {
		if !in(p.X, p.Y) || !in(p.EndX, p.EndY) {
			return fmt.Errorf("pass %d from %s to %s: %w", i, p.Passer, p.Receiver, ErrOffPitch)
		}
	}
	return nil
}

// Progression is a move of the ball between thirds.
type Progression int

// Progressions between thirds.
const (
	DefensiveToMiddle Progression = iota + 1
	MiddleToAttacking
	DefensiveToAttacking
)

// ParseProgression maps "d2m", "m2a" and "d2a" to a Progression. An empty
// string yields the zero Progression.
func ParseProgression(s string) (Progression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "d2m":
		return DefensiveToMiddle, nil
	case "m2a":
		return MiddleToAttacking, nil
	case "d2a":
		return DefensiveToAttacking, nil
	}
	return 0, fmt.Errorf("progression %q: %w", s, ErrUnsupported)
}

// Progressive keeps passes that carry the ball across the third boundaries
// described by pr.
func Progressive(passes []model.PassEvent, pr Progression, first, second float64) ([]model.PassEvent, error) {
	var keep func(p model.PassEvent) bool
	switch pr {
	case DefensiveToMiddle:
		keep = func(p model.PassEvent) bool { return p.X < first && p.EndX >= first && p.EndX < second }
	case MiddleToAttacking:
		keep = func(p model.PassEvent) bool { return p.X >= first && p.X < second && p.EndX >= second }
	case DefensiveToAttacking:
		keep = func(p model.PassEvent) bool { return p.X < first && p.EndX >= second }
	default:
		return nil, fmt.Errorf("progression %d: %w", int(pr), ErrUnsupported)
	}
	return filter(passes, keep), nil
}

func filter(passes []model.PassEvent, keep func(model.PassEvent) bool) []model.PassEvent {
	out := make([]model.PassEvent, 0, len(passes))
	for _, p := range passes {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
