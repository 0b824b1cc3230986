package network

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	gnetwork "gonum.org/v1/gonum/graph/network"
)

// Centrality stores the centrality selected by k under its attribute, using
// cost as edge length for shortest paths. Unreachable pairs contribute
// nothing. The graph is left untouched when k or cost is invalid.
func Centrality(g *Graph, k Kind, cost EdgeAttribute) error {
	attr, err := k.Attribute()
	if err != nil {
		return err
	}
	if !cost.valid() {
		return fmt.Errorf("cost %s: %w", cost, ErrUnsupportedMetric)
	}

	var values []float64
	switch k {
	case KindBetweenness:
		values = betweenness(g, cost)
	case KindInHarmonic:
		values = harmonic(g, cost, false)
	case KindOutHarmonic:
		values = harmonic(g, cost, true)
	}
	for i := range values {
		values[i] = round(values[i], metricDecimals)
	}
	g.setAll(attr, values)
	return nil
}

// weighted copies g into a gonum graph whose node IDs are node indices and
// whose edge weights are read from cost. Self passes are left out since
// they never lie on a shortest path.
func weighted(g *Graph, cost EdgeAttribute, reversed bool) *simple.WeightedDirectedGraph {
	wg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := range g.nodes {
		wg.AddNode(simple.Node(int64(i)))
	}
	for k, e := range g.edges {
		u, v := g.from[k], g.to[k]
		if u == v {
			continue
		}
		if reversed {
			u, v = v, u
		}
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(int64(u)), simple.Node(int64(v)), cost.value(e)))
	}
	return wg
}

// betweenness computes directed shortest-path betweenness normalized by
// (n-1)(n-2). Graphs of two nodes or fewer have no intermediate nodes.
func betweenness(g *Graph, cost EdgeAttribute) []float64 {
	n := g.Order()
	bc := make([]float64, n)
	if n <= 2 {
		return bc
	}
	wg := weighted(g, cost, false)
	raw := gnetwork.BetweennessWeighted(wg, path.DijkstraAllPaths(wg))
	scale := 1 / float64((n-1)*(n-2))
	for id, v := range raw {
		bc[id] = v * scale
	}
	return bc
}

// harmonic sums, for every node, the reciprocal distances from all other
// nodes that can reach it. With reversed set the edges are flipped first,
// which measures how well a node reaches the others instead.
func harmonic(g *Graph, cost EdgeAttribute, reversed bool) []float64 {
	h := make([]float64, g.Order())
	if len(h) == 0 {
		return h
	}
	wg := weighted(g, cost, reversed)
	for id, v := range gnetwork.Harmonic(wg, path.DijkstraAllPaths(wg)) {
		h[id] = v
	}
	return h
}
