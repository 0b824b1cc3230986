// Package network builds weighted, directed passing networks from completed
// passes and annotates their nodes with strength and distance centralities.
//
// A Graph is built once per pass set and never mutated structurally; metric
// functions only add node attributes. A Graph is not safe for concurrent
// annotation.
package network

import (
	"sort"
	"strconv"
)

// Position is a point on the pitch.
type Position struct {
	X float64
	Y float64
}

// Attribute names a node metric.
type Attribute string

// Node attribute names.
const (
	AttrInStrength  Attribute = "in-strength"
	AttrOutStrength Attribute = "out-strength"
	AttrStrength    Attribute = "strength"
	AttrBetweenness Attribute = "betweenness"
	AttrInHarmonic  Attribute = "in-harmonic"
	AttrOutHarmonic Attribute = "out-harmonic"
)

// Node is a player in the network.
type Node struct {
	ID       string   // jersey token
	Position Position // average position over the player's pass samples

	attrs map[Attribute]float64
}

// Attribute returns the value stored under a, if it has been computed.
func (n Node) Attribute(a Attribute) (float64, bool) {
	v, ok := n.attrs[a]
	return v, ok
}

// Attributes returns a copy of all computed metrics.
func (n Node) Attributes() map[Attribute]float64 {
	out := make(map[Attribute]float64, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Edge aggregates every pass from one player to another.
type Edge struct {
	From      string
	To        string
	Intensity int     // number of passes, always >= 1
	Distance  float64 // decreasing transform of Intensity
}

// Graph is a directed passing network with at most one edge per ordered pair.
type Graph struct {
	nodes []Node
	index map[string]int
	edges []Edge
	// from/to hold node indices per edge; out holds edge indices per node.
	from []int
	to   []int
	out  [][]int
}

func newGraph(ids []string) *Graph {
	sortTokens(ids)
	g := &Graph{
		nodes: make([]Node, len(ids)),
		index: make(map[string]int, len(ids)),
		out:   make([][]int, len(ids)),
	}
	for i, id := range ids {
		g.nodes[i] = Node{ID: id, attrs: make(map[Attribute]float64)}
		g.index[id] = i
	}
	return g
}

// addEdge appends an edge; callers add edges in (from, to) order.
func (g *Graph) addEdge(e Edge) {
	u, v := g.index[e.From], g.index[e.To]
	k := len(g.edges)
	g.edges = append(g.edges, e)
	g.from = append(g.from, u)
	g.to = append(g.to, v)
	g.out[u] = append(g.out[u], k)
}

// Order returns the number of nodes.
func (g *Graph) Order() int { return len(g.nodes) }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// Nodes returns the nodes in token order. The returned values are copies.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = Node{ID: n.ID, Position: n.Position, attrs: n.Attributes()}
	}
	return out
}

// Node looks a node up by jersey token.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	n := g.nodes[i]
	return Node{ID: n.ID, Position: n.Position, attrs: n.Attributes()}, true
}

// Edges returns the edges ordered by passer, then receiver.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Edge returns the edge from one player to another, if any pass was made.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	u, ok := g.index[from]
	if !ok {
		return Edge{}, false
	}
	for _, k := range g.out[u] {
		if g.edges[k].To == to {
			return g.edges[k], true
		}
	}
	return Edge{}, false
}

// setAll stores one value per node under a.
func (g *Graph) setAll(a Attribute, values []float64) {
	for i := range g.nodes {
		g.nodes[i].attrs[a] = values[i]
	}
}

// sortTokens orders jersey tokens numerically where possible so that "2"
// sorts before "10"; non-numeric tokens follow in lexical order.
func sortTokens(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return tokenLess(ids[i], ids[j]) })
}

func tokenLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
