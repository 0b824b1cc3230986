// Package passes derives the completed pass set of one team and one phase
// of play from a match event stream, and offers spatial filters over it.
package passes

import (
	"fmt"
	"strconv"

	"github.com/okian/passnet/internal/domain/model"
)

// PhaseBoundaries returns the event indices that close each phase of play for
// team. A phase ends at a substitution; substitutions on consecutive indices
// are one change window and close the phase at the last of them.
func PhaseBoundaries(events []model.MatchEvent, team string) []int {
	var subs []int
	for _, e := range events {
		if e.Type == model.EventSubstitution && e.Team == team {
			subs = append(subs, e.Index)
		}
	}
	if len(subs) == 0 {
		return []int{}
	}

	bounds := make([]int, 0, len(subs))
	last := subs[0]
	for _, idx := range subs[1:] {
		if idx != last+1 {
			bounds = append(bounds, last)
		}
		last = idx
	}
	return append(bounds, last)
}

// Phases returns the number of selectable phases for team.
func Phases(events []model.MatchEvent, team string) int {
	return len(PhaseBoundaries(events, team)) + 1
}

// PhaseWindow returns the half-open index window [start, end) of the
// zero-based phase. The last phase runs until total.
func PhaseWindow(bounds []int, phase, total int) (start, end int, err error) {
	if phase < 0 || phase > len(bounds) {
		return 0, 0, fmt.Errorf("phase %d of %d: %w", phase, len(bounds)+1, ErrPhaseOutOfRange)
	}
	if phase > 0 {
		start = bounds[phase-1]
	}
	end = total
	if phase < len(bounds) {
		end = bounds[phase]
	}
	return start, end, nil
}

// Completed selects the completed, non throw-in passes of team whose index
// lies in [start, end), and maps provider player ids to jersey tokens.
func Completed(events []model.MatchEvent, lineup []model.LineupEntry, team string, start, end int) ([]model.PassEvent, error) {
	jersey := make(map[int]string, len(lineup))
	for _, l := range lineup {
		jersey[l.PlayerID] = strconv.Itoa(l.JerseyNumber)
	}

	var out []model.PassEvent
	for _, e := range events {
		if e.Index < start || e.Index >= end {
			continue
		}
		if e.Type != model.EventPass || e.Team != team || e.Outcome != "" || e.SubType == model.SubTypeThrowIn {
			continue
		}
		passer, ok := jersey[e.PlayerID]
		if !ok {
			return nil, fmt.Errorf("event %d passer %d: %w", e.Index, e.PlayerID, ErrUnknownPlayer)
		}
		receiver, ok := jersey[e.RecipientID]
		if !ok {
			return nil, fmt.Errorf("event %d recipient %d: %w", e.Index, e.RecipientID, ErrUnknownPlayer)
		}
		out = append(out, model.PassEvent{
			Passer:   passer,
			Receiver: receiver,
			X:        e.X,
			Y:        e.Y,
			EndX:     e.EndX,
			EndY:     e.EndY,
		})
	}
	return out, nil
}
