// Package model contains domain models passed between layers.
package model

import "math"

// PassEvent is a completed pass between two teammates. Coordinates share the
// pitch coordinate system of the data provider.
type PassEvent struct {
	Passer   string  `json:"passer"`   // jersey token of the player making the pass
	Receiver string  `json:"receiver"` // jersey token of the player receiving it
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	EndX     float64 `json:"end_x"`
	EndY     float64 `json:"end_y"`
}

// Length returns the straight-line distance between origin and destination.
func (p PassEvent) Length() float64 {
	return math.Hypot(p.EndX-p.X, p.EndY-p.Y)
}

// MatchEvent is one row of a match event stream as supplied by the data
// provider. Only the fields needed to derive pass sets are kept.
type MatchEvent struct {
	Index       int     `json:"index"`
	Type        string  `json:"type"`     // e.g. "Pass", "Substitution"
	SubType     string  `json:"sub_type"` // e.g. "Throw-in"
	Team        string  `json:"team"`
	Outcome     string  `json:"outcome"` // empty when the pass was completed
	PlayerID    int     `json:"player_id"`
	RecipientID int     `json:"recipient_id"` // zero when there is no recipient
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	EndX        float64 `json:"end_x"`
	EndY        float64 `json:"end_y"`
}

// Event type and sub type names used by the provider.
const (
	EventPass         = "Pass"
	EventSubstitution = "Substitution"
	SubTypeThrowIn    = "Throw-in"
)

// LineupEntry maps a provider player id to its roster jersey number.
type LineupEntry struct {
	PlayerID     int    `json:"player_id"`
	PlayerName   string `json:"player_name"`
	JerseyNumber int    `json:"jersey_number"`
	Team         string `json:"team"`
}
