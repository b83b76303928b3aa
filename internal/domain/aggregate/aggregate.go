// Package aggregate folds stored observations into per-team summaries.
package aggregate

import (
	"github.com/okian/scout/internal/domain/model"
	"github.com/samber/lo"
)

// TeamGroup is every observation recorded for one team.
type TeamGroup struct {
	TeamNumber   int
	Observations []model.Observation
}

// tally holds the integer sums for one team. Keeping sums integral and
// dividing once per field makes every mean exact for the sums involved and
// identical across calls.
type tally struct {
	reps         int
	autonomous   int
	high         int
	middle       int
	low          int
	penalties    int
	miniAttempts int
	miniPlaceSum int
	reds         int
	yellows      int
}

func (t tally) add(o model.Observation) tally {
	t.reps++
	t.autonomous += int(o.Autonomous)
	t.high += o.High
	t.middle += o.Middle
	t.low += o.Low
	t.penalties += o.Penalties
	if o.MinibotAttempted() {
		t.miniAttempts++
		t.miniPlaceSum += o.MinibotPlace
	}
	switch o.Card {
	case model.CardRed:
		t.reds++
	case model.CardYellow:
		t.yellows++
	}
	return t
}

func ratio(num, den int) float64 { return float64(num) / float64(den) }

func (t tally) summary(team int) model.TeamSummary {
	s := model.TeamSummary{
		TeamNumber:         team,
		Matches:            t.reps,
		AvgAutonomous:      ratio(t.autonomous, t.reps),
		AvgHigh:            ratio(t.high, t.reps),
		AvgMiddle:          ratio(t.middle, t.reps),
		AvgLow:             ratio(t.low, t.reps),
		MinibotAttemptRate: ratio(t.miniAttempts, t.reps),
		AvgPenalties:       ratio(t.penalties, t.reps),
		RedCards:           t.reds,
		YellowCards:        t.yellows,
	}
	// Place is averaged over attempts only; without attempts it is undefined.
	if t.miniAttempts > 0 {
		s.AvgMinibotPlace = model.Some(ratio(t.miniPlaceSum, t.miniAttempts))
	}
	return s
}

// Summarize folds one team's observations. It returns false for an empty
// group since a team without observations has no summary.
func Summarize(team int, obs []model.Observation) (model.TeamSummary, bool) {
	if len(obs) == 0 {
		return model.TeamSummary{}, false
	}
	t := lo.Reduce(obs, func(acc tally, o model.Observation, _ int) tally {
		return acc.add(o)
	}, tally{})
	return t.summary(team), true
}

// ComputeSummaries returns one summary per non-empty group, in group order.
// It has no side effects.
func ComputeSummaries(groups []TeamGroup) []model.TeamSummary {
	out := make([]model.TeamSummary, 0, len(groups))
	for _, g := range groups {
		if s, ok := Summarize(g.TeamNumber, g.Observations); ok {
			out = append(out, s)
		}
	}
	return out
}

// GroupByTeam groups a flat observation list by team number. Teams appear in
// the order of their first observation.
func GroupByTeam(obs []model.Observation) []TeamGroup {
	byTeam := lo.GroupBy(obs, func(o model.Observation) int { return o.TeamNumber })
	teams := lo.Uniq(lo.Map(obs, func(o model.Observation, _ int) int { return o.TeamNumber }))
	return lo.Map(teams, func(team int, _ int) TeamGroup {
		return TeamGroup{TeamNumber: team, Observations: byTeam[team]}
	})
}
