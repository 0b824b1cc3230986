// Package loadtest drives a running passnet service with synthetic pass sets
// and checks every returned network for internal consistency.
package loadtest

import "time"

// Config holds configuration for a load test run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Requests      int           // Number of pass sets to submit
	Passes        int           // Passes per pass set
	Squad         int           // Distinct jersey numbers per pass set
	Workers       int           // Concurrent requests
	Timeout       time.Duration // HTTP request timeout
	DistanceScale float64       // Scale the service is configured with
	Seed          uint64        // Generator seed; equal seeds give equal pass sets
	OutputFile    string        // Optional JSON dump of the generated pass sets
}

// Pass mirrors the wire shape of a completed pass.
type Pass struct {
	Passer   string  `json:"passer"`
	Receiver string  `json:"receiver"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	EndX     float64 `json:"end_x"`
	EndY     float64 `json:"end_y"`
}

// PassSet is one generated request body.
type PassSet struct {
	Label  string `json:"label"`
	Passes []Pass `json:"passes"`
}

// Node mirrors a node of the network response.
type Node struct {
	ID      string             `json:"id"`
	X       float64            `json:"x"`
	Y       float64            `json:"y"`
	Metrics map[string]float64 `json:"metrics"`
}

// Edge mirrors an edge of the network response.
type Edge struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Intensity int     `json:"intensity"`
	Distance  float64 `json:"distance"`
}

// Network mirrors the network response.
type Network struct {
	ID     string `json:"id"`
	Passes int    `json:"passes"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
}

// Stats holds run statistics.
type Stats struct {
	Submitted    int
	Successful   int
	Failed       int
	Inconsistent int
	Duration     time.Duration
}
