// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// AutonomousTier is the highest level reached during the autonomous period.
// Exactly one tier is recorded per observation.
type AutonomousTier int

// Autonomous tiers, encoded as ordinals.
const (
	AutoNone AutonomousTier = iota
	AutoLow
	AutoMiddle
	AutoHigh
)

var autonomousNames = [...]string{"none", "low", "middle", "high"}

func (t AutonomousTier) String() string {
	if t < AutoNone || t > AutoHigh {
		return "tier(" + strconv.Itoa(int(t)) + ")"
	}
	return autonomousNames[t]
}

// ParseAutonomousTier accepts a tier name or its ordinal.
func ParseAutonomousTier(s string) (AutonomousTier, error) {
	v, err := parseOrdinal(s, autonomousNames[:])
	if err != nil {
		return AutoNone, fmt.Errorf("autonomous tier %q: %w", s, err)
	}
	return AutonomousTier(v), nil
}

// CardLevel is the penalty card issued in a match, if any.
type CardLevel int

// Card levels, encoded as ordinals.
const (
	CardNone CardLevel = iota
	CardYellow
	CardRed
)

var cardNames = [...]string{"none", "yellow", "red"}

func (c CardLevel) String() string {
	if c < CardNone || c > CardRed {
		return "card(" + strconv.Itoa(int(c)) + ")"
	}
	return cardNames[c]
}

// ParseCardLevel accepts a card name or its ordinal.
func ParseCardLevel(s string) (CardLevel, error) {
	v, err := parseOrdinal(s, cardNames[:])
	if err != nil {
		return CardNone, fmt.Errorf("card level %q: %w", s, err)
	}
	return CardLevel(v), nil
}

func parseOrdinal(s string, names []string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if s == name {
			return i, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(names) {
		return 0, fmt.Errorf("want one of %s", strings.Join(names, ", "))
	}
	return n, nil
}

// Observation is one recorded match performance for one team.
// Observations are immutable once stored.
type Observation struct {
	ID           int64          `json:"id,omitempty"`
	MatchNumber  int            `json:"match_number" validate:"gte=1"`
	TeamNumber   int            `json:"team_number" validate:"gte=1"`
	Autonomous   AutonomousTier `json:"autonomous" validate:"gte=0,lte=3"`
	High         int            `json:"high" validate:"gte=0"`
	Middle       int            `json:"middle" validate:"gte=0"`
	Low          int            `json:"low" validate:"gte=0"`
	MinibotPlace int            `json:"minibot_place" validate:"gte=0"` // 0 = not attempted
	Penalties    int            `json:"penalties" validate:"gte=0"`
	Card         CardLevel      `json:"card" validate:"gte=0,lte=2"`
	Comment      string         `json:"comment,omitempty"`
}

// MinibotAttempted reports whether the minibot was used and placed.
func (o Observation) MinibotAttempted() bool { return o.MinibotPlace > 0 }
