package network

import (
	"fmt"
	"math"

	"github.com/okian/passnet/internal/domain/model"
)

type builder struct {
	distanceScale float64
}

type pair struct {
	from string
	to   string
}

// samples accumulates the coordinates contributing to a player's average
// position.
type samples struct {
	sumX, sumY float64
	n          int
}

func (s *samples) add(x, y float64) {
	s.sumX += x
	s.sumY += y
	s.n++
}

// Build aggregates passes into a directed network. Passes are grouped by
// (passer, receiver); each group becomes one edge whose intensity is the
// group size. The caller is responsible for restricting passes to one team
// and one phase of play.
//
// An empty pass set yields an empty graph.
func Build(passes []model.PassEvent, opts ...BuildOption) (*Graph, error) {
	b := &builder{distanceScale: defaultDistanceScale}
	for _, opt := range opts {
		opt(b)
	}

	counts := make(map[pair]int)
	pos := make(map[string]*samples)
	sample := func(id string) *samples {
		s, ok := pos[id]
		if !ok {
			s = &samples{}
			pos[id] = s
		}
		return s
	}

	for i, p := range passes {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("pass %d: %w", i, err)
		}
		counts[pair{from: p.Passer, to: p.Receiver}]++
		sample(p.Passer).add(p.X, p.Y)
		sample(p.Receiver).add(p.EndX, p.EndY)
	}

	ids := make([]string, 0, len(pos))
	for id := range pos {
		ids = append(ids, id)
	}
	g := newGraph(ids)

	for i := range g.nodes {
		s := pos[g.nodes[i].ID]
		if s == nil || s.n == 0 {
			return nil, fmt.Errorf("player %s: %w", g.nodes[i].ID, ErrUndefinedPosition)
		}
		g.nodes[i].Position = Position{
			X: round(s.sumX/float64(s.n), positionDecimals),
			Y: round(s.sumY/float64(s.n), positionDecimals),
		}
	}

	// Walk pairs in node order so edge order is stable across runs.
	for _, u := range g.nodes {
		for _, v := range g.nodes {
			c, ok := counts[pair{from: u.ID, to: v.ID}]
			if !ok {
				continue
			}
			g.addEdge(Edge{
				From:      u.ID,
				To:        v.ID,
				Intensity: c,
				Distance:  b.distance(c),
			})
		}
	}
	return g, nil
}

func (b *builder) distance(intensity int) float64 {
	return round(b.distanceScale/float64(intensity), distanceDecimals)
}

func validate(p model.PassEvent) error {
	if p.Passer == "" || p.Receiver == "" {
		return fmt.Errorf("missing player token: %w", ErrInvalidPass)
	}
	for _, c := range []float64{p.X, p.Y, p.EndX, p.EndY} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("non-finite coordinate: %w", ErrInvalidPass)
		}
	}
	return nil
}

func round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
