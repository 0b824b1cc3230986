package network_test

import (
	"math/rand"
	"strconv"

	"github.com/okian/passnet/internal/domain/model"
)

// syntheticPasses returns n deterministic passes among players 1..squad.
func syntheticPasses(n, squad int) []model.PassEvent {
	rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic fixture
	out := make([]model.PassEvent, 0, n)
	for len(out) < n {
		from := rng.Intn(squad) + 1
		to := rng.Intn(squad) + 1
		if from == to {
			continue
		}
		out = append(out, model.PassEvent{
			Passer:   strconv.Itoa(from),
			Receiver: strconv.Itoa(to),
			X:        rng.Float64() * 120,
			Y:        rng.Float64() * 80,
			EndX:     rng.Float64() * 120,
			EndY:     rng.Float64() * 80,
		})
	}
	return out
}
