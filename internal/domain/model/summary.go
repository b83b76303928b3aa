package model

import (
	"encoding/json"
	"strconv"
)

// OptionalFloat is a float that may be undefined, e.g. a mean over an empty
// subset. The zero value is undefined.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// Some returns a defined OptionalFloat.
func Some(v float64) OptionalFloat { return OptionalFloat{Value: v, Valid: true} }

// MarshalJSON encodes an undefined value as null.
func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts null or a number.
func (f *OptionalFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = OptionalFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Some(v)
	return nil
}

// Format renders the value with the given precision, or "-" when undefined.
func (f OptionalFloat) Format(prec int) string {
	if !f.Valid {
		return "-"
	}
	return strconv.FormatFloat(f.Value, 'f', prec, 64)
}

// TeamSummary holds per-team aggregates recomputed on every refresh. It keeps
// no reference to the observations it was built from.
type TeamSummary struct {
	TeamNumber         int           `json:"team_number"`
	Matches            int           `json:"matches"`
	AvgAutonomous      float64       `json:"avg_autonomous"`
	AvgHigh            float64       `json:"avg_high"`
	AvgMiddle          float64       `json:"avg_middle"`
	AvgLow             float64       `json:"avg_low"`
	MinibotAttemptRate float64       `json:"minibot_attempt_rate"`
	AvgMinibotPlace    OptionalFloat `json:"avg_minibot_place"` // undefined without attempts
	AvgPenalties       float64       `json:"avg_penalties"`
	RedCards           int           `json:"red_cards"`
	YellowCards        int           `json:"yellow_cards"`
}
