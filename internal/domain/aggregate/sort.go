package aggregate

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/scout/internal/domain/model"
	"github.com/samber/lo"
)

// ErrUnknownSortKey is returned for a column SortSummaries does not know.
var ErrUnknownSortKey = errors.New("unknown sort key")

type sortValue func(model.TeamSummary) (float64, bool)

func always(f func(model.TeamSummary) float64) sortValue {
	return func(s model.TeamSummary) (float64, bool) { return f(s), true }
}

var sortKeys = map[string]sortValue{
	"team":                 always(func(s model.TeamSummary) float64 { return float64(s.TeamNumber) }),
	"matches":              always(func(s model.TeamSummary) float64 { return float64(s.Matches) }),
	"avg_autonomous":       always(func(s model.TeamSummary) float64 { return s.AvgAutonomous }),
	"avg_high":             always(func(s model.TeamSummary) float64 { return s.AvgHigh }),
	"avg_middle":           always(func(s model.TeamSummary) float64 { return s.AvgMiddle }),
	"avg_low":              always(func(s model.TeamSummary) float64 { return s.AvgLow }),
	"minibot_attempt_rate": always(func(s model.TeamSummary) float64 { return s.MinibotAttemptRate }),
	"avg_minibot_place": func(s model.TeamSummary) (float64, bool) {
		return s.AvgMinibotPlace.Value, s.AvgMinibotPlace.Valid
	},
	"avg_penalties": always(func(s model.TeamSummary) float64 { return s.AvgPenalties }),
	"red_cards":     always(func(s model.TeamSummary) float64 { return float64(s.RedCards) }),
	"yellow_cards":  always(func(s model.TeamSummary) float64 { return float64(s.YellowCards) }),
}

// SortKeys lists the accepted sort columns.
func SortKeys() []string {
	keys := lo.Keys(sortKeys)
	slices.Sort(keys)
	return keys
}

// SortSummaries returns a copy of summaries ordered by key. The sort is
// stable, and undefined values sort last in either direction. An empty key
// keeps the input order.
func SortSummaries(summaries []model.TeamSummary, key string, desc bool) ([]model.TeamSummary, error) {
	out := slices.Clone(summaries)
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return out, nil
	}
	value, ok := sortKeys[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownSortKey, key, strings.Join(SortKeys(), ", "))
	}
	slices.SortStableFunc(out, func(a, b model.TeamSummary) int {
		av, aok := value(a)
		bv, bok := value(b)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := 0
		if av < bv {
			c = -1
		} else if av > bv {
			c = 1
		}
		if desc {
			c = -c
		}
		return c
	})
	return out, nil
}
