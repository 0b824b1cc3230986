package loadtest

import (
	"errors"
	"fmt"
	"math"
)

// tolerance absorbs the 4 decimal rounding of each summed strength.
const tolerance = 1e-3

// verify checks the invariants every network must satisfy for the pass set
// it was built from.
func verify(set PassSet, n Network, scale float64) error {
	var errs []error
	if n.Passes != len(set.Passes) {
		errs = append(errs, fmt.Errorf("passes: got %d, want %d", n.Passes, len(set.Passes)))
	}

	pairs := make(map[[2]string]int)
	for _, p := range set.Passes {
		pairs[[2]string{p.Passer, p.Receiver}]++
	}
	if len(n.Edges) != len(pairs) {
		errs = append(errs, fmt.Errorf("edges: got %d, want %d", len(n.Edges), len(pairs)))
	}
	for _, e := range n.Edges {
		if want := pairs[[2]string{e.From, e.To}]; e.Intensity != want {
			errs = append(errs, fmt.Errorf("edge %s->%s: intensity %d, want %d", e.From, e.To, e.Intensity, want))
		}
		if want := math.Round(scale/float64(e.Intensity)*1e4) / 1e4; e.Distance != want {
			errs = append(errs, fmt.Errorf("edge %s->%s: distance %v, want %v", e.From, e.To, e.Distance, want))
		}
	}

	var in, out float64
	var hasIn, hasOut bool
	for _, node := range n.Nodes {
		if v, ok := node.Metrics["in-strength"]; ok {
			in, hasIn = in+v, true
		}
		if v, ok := node.Metrics["out-strength"]; ok {
			out, hasOut = out+v, true
		}
		if b, ok := node.Metrics["betweenness"]; ok && (b < 0 || b > 1) {
			errs = append(errs, fmt.Errorf("node %s: betweenness %v outside [0, 1]", node.ID, b))
		}
		for _, k := range []string{"in-harmonic", "out-harmonic"} {
			if h, ok := node.Metrics[k]; ok && (h < 0 || h > float64(len(n.Nodes)-1)/minDistance(n.Edges)+tolerance) {
				errs = append(errs, fmt.Errorf("node %s: %s %v out of range", node.ID, k, h))
			}
		}
	}
	// Every pass adds one to exactly one in-strength and one out-strength.
	want := float64(len(set.Passes))
	slack := tolerance * float64(len(n.Nodes)+1)
	if hasIn && math.Abs(in-want) > slack {
		errs = append(errs, fmt.Errorf("in-strength sum %v, want %v passes", in, want))
	}
	if hasOut && math.Abs(out-want) > slack {
		errs = append(errs, fmt.Errorf("out-strength sum %v, want %v passes", out, want))
	}
	return errors.Join(errs...)
}

// minDistance returns the shortest edge distance; harmonic closeness cannot
// exceed (n-1) times its reciprocal.
func minDistance(edges []Edge) float64 {
	m := math.Inf(1)
	for _, e := range edges {
		m = math.Min(m, e.Distance)
	}
	return m
}
