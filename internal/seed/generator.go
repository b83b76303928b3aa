// Package seed generates synthetic scouting observations for demos and load
// checks. Generation is deterministic for a given seed.
package seed

import (
	"math/rand"

	"github.com/okian/scout/internal/domain/model"
)

// Default generation sizes.
const (
	DefaultTeams   = 24
	DefaultMatches = 40
	TeamsPerMatch  = 6
)

// Team numbers are drawn from this range.
const (
	minTeamNumber = 1
	maxTeamNumber = 4000
)

// Performer profiles scale how many game pieces a team scores.
const (
	caseAveragePerformer = 0
	caseHighPerformer    = 1
	caseLowPerformer     = 2
	caseElitePerformer   = 3
	caseMidPerformer     = 4
	profileCount         = 5
)

// Probability thresholds, out of 100.
const (
	minibotAttemptPercent = 40
	yellowCardPercent     = 6
	redCardPercent        = 2
	commentPercent        = 15
	maxMinibotPlace       = 4
)

var comments = []string{
	"fast drivetrain",
	"dropped tubes under defense",
	"strong minibot deploy",
	"tipped once, recovered",
	"played defense most of the match",
	"arm jammed in autonomous",
}

// Options controls a generation run.
type Options struct {
	// Teams is the size of the team pool.
	Teams int
	// Matches is the number of matches; each fields up to TeamsPerMatch teams.
	Matches int
	// Seed makes the run reproducible.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.Teams <= 0 {
		o.Teams = DefaultTeams
	}
	if o.Matches <= 0 {
		o.Matches = DefaultMatches
	}
	return o
}

type profile struct {
	scoring float64 // expected game pieces per match
	auto    float64 // chance of a non-trivial autonomous
}

// Generate returns one observation per team per match, matches in order.
func Generate(opts Options) []model.Observation {
	opts = opts.withDefaults()
	r := rand.New(rand.NewSource(opts.Seed)) //nolint:gosec // reproducible demo data, not security relevant

	teams := teamPool(r, opts.Teams)
	profiles := make(map[int]profile, len(teams))
	for _, team := range teams {
		profiles[team] = pickProfile(r)
	}

	perMatch := min(TeamsPerMatch, len(teams))
	out := make([]model.Observation, 0, opts.Matches*perMatch)
	for match := 1; match <= opts.Matches; match++ {
		for _, idx := range r.Perm(len(teams))[:perMatch] {
			team := teams[idx]
			out = append(out, generateSingle(r, match, team, profiles[team]))
		}
	}
	return out
}

// teamPool draws n distinct team numbers.
func teamPool(r *rand.Rand, n int) []int {
	if n > maxTeamNumber-minTeamNumber+1 {
		n = maxTeamNumber - minTeamNumber + 1
	}
	seen := make(map[int]struct{}, n)
	teams := make([]int, 0, n)
	for len(teams) < n {
		team := minTeamNumber + r.Intn(maxTeamNumber-minTeamNumber+1)
		if _, ok := seen[team]; ok {
			continue
		}
		seen[team] = struct{}{}
		teams = append(teams, team)
	}
	return teams
}

func pickProfile(r *rand.Rand) profile {
	switch r.Intn(profileCount) {
	case caseHighPerformer:
		return profile{scoring: 6, auto: 0.7}
	case caseLowPerformer:
		return profile{scoring: 1.5, auto: 0.2}
	case caseElitePerformer:
		return profile{scoring: 9, auto: 0.95}
	case caseMidPerformer:
		return profile{scoring: 4.5, auto: 0.5}
	default:
		return profile{scoring: 3, auto: 0.4}
	}
}

func generateSingle(r *rand.Rand, match, team int, p profile) model.Observation {
	pieces := r.Intn(int(p.scoring*2) + 1)
	high := r.Intn(pieces + 1)
	middle := r.Intn(pieces - high + 1)

	o := model.Observation{
		MatchNumber: match,
		TeamNumber:  team,
		High:        high,
		Middle:      middle,
		Low:         pieces - high - middle,
		Penalties:   penalties(r),
	}
	if r.Float64() < p.auto {
		o.Autonomous = model.AutonomousTier(1 + r.Intn(int(model.AutoHigh)))
	}
	if r.Intn(100) < minibotAttemptPercent {
		o.MinibotPlace = 1 + r.Intn(maxMinibotPlace)
	}
	switch roll := r.Intn(100); {
	case roll < redCardPercent:
		o.Card = model.CardRed
	case roll < redCardPercent+yellowCardPercent:
		o.Card = model.CardYellow
	}
	if r.Intn(100) < commentPercent {
		o.Comment = comments[r.Intn(len(comments))]
	}
	return o
}

// penalties is skewed toward zero.
func penalties(r *rand.Rand) int {
	n := 0
	for n < 5 && r.Intn(4) == 0 {
		n++
	}
	return n
}
