package loadtest

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

// StatsBomb pitch dimensions in yards.
const (
	pitchLength = 120.0
	pitchWidth  = 80.0
)

// generate returns cfg.Requests pass sets drawn from a seeded source.
func generate(cfg *Config) []PassSet {
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	sets := make([]PassSet, cfg.Requests)
	for i := range sets {
		sets[i] = PassSet{
			Label:  uuid.NewString(),
			Passes: generatePasses(r, cfg.Passes, cfg.Squad),
		}
	}
	return sets
}

// generatePasses draws n passes between distinct players of a squad.
func generatePasses(r *rand.Rand, n, squad int) []Pass {
	if squad < 2 {
		squad = 2
	}
	out := make([]Pass, n)
	for i := range out {
		from := r.IntN(squad)
		to := r.IntN(squad - 1)
		if to >= from {
			to++
		}
		out[i] = Pass{
			Passer:   strconv.Itoa(from + 1),
			Receiver: strconv.Itoa(to + 1),
			X:        r.Float64() * pitchLength,
			Y:        r.Float64() * pitchWidth,
			EndX:     r.Float64() * pitchLength,
			EndY:     r.Float64() * pitchWidth,
		}
	}
	return out
}
