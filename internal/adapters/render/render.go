package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/types"
)

// ErrUnknownFormat is returned for an output format other than table, json or csv.
var ErrUnknownFormat = errors.New("unknown output format")

const precision = 2

var summaryHeaders = []string{
	"rank", "team_number", "matches", "avg_autonomous", "avg_high", "avg_middle", "avg_low",
	"minibot_attempt_rate", "avg_minibot_place", "avg_penalties", "red_cards", "yellow_cards",
}

var summaryTitles = []string{
	"#", "Team", "Matches", "Auto", "High", "Middle", "Low",
	"Minibot %", "Minibot Place", "Penalties", "Red", "Yellow",
}

var observationHeaders = []string{
	"id", "match_number", "team_number", "autonomous", "high", "middle", "low",
	"minibot_place", "penalties", "card", "comment",
}

var observationTitles = []string{
	"ID", "Match", "Team", "Auto", "High", "Middle", "Low",
	"Minibot", "Penalties", "Card", "Comment",
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', precision, 64) }

// percent renders a 0..1 rate as a whole percentage.
func percent(v float64) string { return strconv.FormatFloat(v*100, 'f', 0, 64) + "%" }

func summaryRecord(e types.Entry) []string {
	return []string{
		strconv.Itoa(e.Rank),
		strconv.Itoa(e.TeamNumber),
		strconv.Itoa(e.Matches),
		ftoa(e.AvgAutonomous),
		ftoa(e.AvgHigh),
		ftoa(e.AvgMiddle),
		ftoa(e.AvgLow),
		ftoa(e.MinibotAttemptRate),
		e.AvgMinibotPlace.Format(precision),
		ftoa(e.AvgPenalties),
		strconv.Itoa(e.RedCards),
		strconv.Itoa(e.YellowCards),
	}
}

func observationRecord(o model.Observation) []string {
	place := "-"
	if o.MinibotAttempted() {
		place = strconv.Itoa(o.MinibotPlace)
	}
	return []string{
		strconv.FormatInt(o.ID, 10),
		strconv.Itoa(o.MatchNumber),
		strconv.Itoa(o.TeamNumber),
		o.Autonomous.String(),
		strconv.Itoa(o.High),
		strconv.Itoa(o.Middle),
		strconv.Itoa(o.Low),
		place,
		strconv.Itoa(o.Penalties),
		o.Card.String(),
		o.Comment,
	}
}

// Summaries writes ranked team summaries in the given format.
func Summaries(w io.Writer, format string, entries []types.Entry) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, nonNil(entries))
	case config.FormatCSV:
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = summaryRecord(e)
		}
		return writeCSV(w, summaryHeaders, rows)
	case config.FormatTable, "":
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "no observations recorded")
			return err
		}
		styles := DefaultStyles()
		t := NewTable("Team summaries", summaryTitles...).AlignRight(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
		for _, e := range entries {
			row := summaryRecord(e)
			row[7] = percent(e.MinibotAttemptRate)
			if e.RedCards > 0 {
				row[10] = styles.Red.Render(row[10])
			}
			if e.YellowCards > 0 {
				row[11] = styles.Yellow.Render(row[11])
			}
			t.AddRow(row...)
		}
		_, err := io.WriteString(w, t.View(styles))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Observations writes raw observations in the given format.
func Observations(w io.Writer, format string, rows []model.Observation) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, nonNil(rows))
	case config.FormatCSV:
		records := make([][]string, len(rows))
		for i, o := range rows {
			records[i] = observationRecord(o)
			records[i][7] = strconv.Itoa(o.MinibotPlace)
		}
		return writeCSV(w, observationHeaders, records)
	case config.FormatTable, "":
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "no observations recorded")
			return err
		}
		t := NewTable("Observations", observationTitles...).AlignRight(0, 1, 2, 4, 5, 6, 7, 8)
		for _, o := range rows {
			t.AddRow(observationRecord(o)...)
		}
		_, err := io.WriteString(w, t.View(DefaultStyles()))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
