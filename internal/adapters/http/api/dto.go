package api

import (
	"fmt"

	service "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/internal/domain/network"
)

// metricsRequest names the metrics to compute. Omitted lists use the server
// defaults; empty lists disable that family.
type metricsRequest struct {
	Strength     []string `json:"strength,omitempty"`
	Centralities []string `json:"centralities,omitempty"`
	Weight       string   `json:"weight,omitempty"`
	Cost         string   `json:"cost,omitempty"`
}

func (m metricsRequest) toSet() (service.MetricSet, error) {
	var set service.MetricSet
	if m.Strength != nil {
		set.Strength = make([]network.Direction, 0, len(m.Strength))
		for _, s := range m.Strength {
			d, err := network.ParseDirection(s)
			if err != nil {
				return set, err
			}
			set.Strength = append(set.Strength, d)
		}
	}
	if m.Centralities != nil {
		set.Centralities = make([]network.Kind, 0, len(m.Centralities))
		for _, s := range m.Centralities {
			k, err := network.ParseKind(s)
			if err != nil {
				return set, err
			}
			set.Centralities = append(set.Centralities, k)
		}
	}
	var err error
	if m.Weight != "" {
		if set.Weight, err = network.ParseEdgeAttribute(m.Weight); err != nil {
			return set, fmt.Errorf("weight: %w", err)
		}
	}
	if m.Cost != "" {
		if set.Cost, err = network.ParseEdgeAttribute(m.Cost); err != nil {
			return set, fmt.Errorf("cost: %w", err)
		}
	}
	return set, nil
}

type nodeResponse struct {
	ID      string                        `json:"id"`
	X       float64                       `json:"x"`
	Y       float64                       `json:"y"`
	Metrics map[network.Attribute]float64 `json:"metrics"`
}

type edgeResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Intensity int     `json:"intensity"`
	Distance  float64 `json:"distance"`
}

type networkResponse struct {
	ID         string         `json:"id"`
	Passes     int            `json:"passes"`
	DurationMs float64        `json:"duration_ms"`
	Nodes      []nodeResponse `json:"nodes"`
	Edges      []edgeResponse `json:"edges"`
}

func newNetworkResponse(a *service.Analysis) networkResponse {
	nodes := a.Graph.Nodes()
	edges := a.Graph.Edges()
	resp := networkResponse{
		ID:         a.ID,
		Passes:     a.Passes,
		DurationMs: float64(a.Duration.Microseconds()) / 1000,
		Nodes:      make([]nodeResponse, 0, len(nodes)),
		Edges:      make([]edgeResponse, 0, len(edges)),
	}
	for _, n := range nodes {
		resp.Nodes = append(resp.Nodes, nodeResponse{
			ID:      n.ID,
			X:       n.Position.X,
			Y:       n.Position.Y,
			Metrics: n.Attributes(),
		})
	}
	for _, e := range edges {
		resp.Edges = append(resp.Edges, edgeResponse{
			From:      e.From,
			To:        e.To,
			Intensity: e.Intensity,
			Distance:  e.Distance,
		})
	}
	return resp
}
