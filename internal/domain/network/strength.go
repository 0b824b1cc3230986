package network

import "fmt"

// Strength stores the weighted degree of every node under the attribute
// matching d: in-strength sums incoming edge weights, out-strength outgoing
// ones and strength both. Self passes count once on each side.
func Strength(g *Graph, d Direction, weight EdgeAttribute) error {
	attr, err := d.Attribute()
	if err != nil {
		return err
	}
	if !weight.valid() {
		return fmt.Errorf("weight %s: %w", weight, ErrUnsupportedMetric)
	}

	values := make([]float64, g.Order())
	for k, e := range g.edges {
		w := weight.value(e)
		if d == DirectionIn || d == DirectionTotal {
			values[g.to[k]] += w
		}
		if d == DirectionOut || d == DirectionTotal {
			values[g.from[k]] += w
		}
	}
	for i := range values {
		values[i] = round(values[i], metricDecimals)
	}
	g.setAll(attr, values)
	return nil
}
