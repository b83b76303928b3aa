package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleEntries() []types.Entry {
	return types.Rank([]model.TeamSummary{
		{
			TeamNumber: 100, Matches: 4, AvgAutonomous: 1.5, AvgHigh: 3.25, AvgMiddle: 1, AvgLow: 0.5,
			MinibotAttemptRate: 0.5, AvgMinibotPlace: model.Some(1.5), AvgPenalties: 0.25, RedCards: 1,
		},
		{TeamNumber: 254, Matches: 2, AvgHigh: 6},
	})
}

func TestSummaries(t *testing.T) {
	Convey("Given ranked summaries", t, func() {
		entries := sampleEntries()
		var buf bytes.Buffer

		Convey("When rendered as a table", func() {
			So(Summaries(&buf, "table", entries), ShouldBeNil)
			out := buf.String()

			Convey("Then every team and sentinel should appear", func() {
				So(out, ShouldContainSubstring, "Team summaries")
				So(out, ShouldContainSubstring, "Minibot Place")
				So(out, ShouldContainSubstring, "3.25")
				So(out, ShouldContainSubstring, "50%")
				So(out, ShouldContainSubstring, "254")
				So(out, ShouldContainSubstring, " - ")
			})

			Convey("Then header, divider and rows should be on their own lines", func() {
				lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
				So(len(lines), ShouldEqual, 5)
				So(strings.Trim(lines[2], "-"), ShouldBeEmpty)
			})
		})

		Convey("When rendered as CSV", func() {
			So(Summaries(&buf, "csv", entries), ShouldBeNil)
			records, err := csv.NewReader(&buf).ReadAll()

			Convey("Then it should have a header and undefined values as dashes", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 3)
				So(records[0], ShouldResemble, summaryHeaders)
				So(records[1][1], ShouldEqual, "100")
				So(records[1][8], ShouldEqual, "1.50")
				So(records[2][8], ShouldEqual, "-")
			})
		})

		Convey("When rendered as JSON", func() {
			So(Summaries(&buf, "json", entries), ShouldBeNil)
			var decoded []map[string]any
			err := json.Unmarshal(buf.Bytes(), &decoded)

			Convey("Then undefined values should be null", func() {
				So(err, ShouldBeNil)
				So(len(decoded), ShouldEqual, 2)
				So(decoded[0]["rank"], ShouldEqual, 1.0)
				So(decoded[0]["avg_minibot_place"], ShouldEqual, 1.5)
				So(decoded[1]["avg_minibot_place"], ShouldBeNil)
			})
		})

		Convey("When there are no summaries", func() {
			So(Summaries(&buf, "table", nil), ShouldBeNil)
			tableOut := buf.String()
			buf.Reset()
			So(Summaries(&buf, "json", nil), ShouldBeNil)

			Convey("Then the table should say so and JSON should be an empty array", func() {
				So(tableOut, ShouldContainSubstring, "no observations recorded")
				So(strings.TrimSpace(buf.String()), ShouldEqual, "[]")
			})
		})

		Convey("When the format is unknown", func() {
			err := Summaries(&buf, "xml", entries)

			Convey("Then ErrUnknownFormat should be returned", func() {
				So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
			})
		})
	})
}

func TestObservations(t *testing.T) {
	Convey("Given observations", t, func() {
		rows := []model.Observation{
			{ID: 1, MatchNumber: 3, TeamNumber: 100, Autonomous: model.AutoHigh, High: 2, MinibotPlace: 1, Card: model.CardYellow, Comment: "quick, precise"},
			{ID: 2, MatchNumber: 3, TeamNumber: 254},
		}
		var buf bytes.Buffer

		Convey("When rendered as a table", func() {
			So(Observations(&buf, "table", rows), ShouldBeNil)

			Convey("Then tiers and cards should use their names", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "high")
				So(out, ShouldContainSubstring, "yellow")
				So(out, ShouldContainSubstring, "quick, precise")
			})
		})

		Convey("When rendered as CSV", func() {
			So(Observations(&buf, "csv", rows), ShouldBeNil)
			records, err := csv.NewReader(&buf).ReadAll()

			Convey("Then commas should be quoted and minibot places numeric", func() {
				So(err, ShouldBeNil)
				So(records[1][10], ShouldEqual, "quick, precise")
				So(records[2][7], ShouldEqual, "0")
			})
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Given a table with uneven cells", t, func() {
		tbl := NewTable("", "a", "long header").AlignRight(1)
		tbl.AddRow("wide cell value", "1")

		Convey("Then every line should have the same width", func() {
			out := tbl.View(DefaultStyles())
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			So(len(lines), ShouldEqual, 3)
			So(len(lines[0]), ShouldEqual, len(lines[1]))
			So(len(lines[2]), ShouldEqual, len(lines[1]))
		})

		Convey("Then an empty table should render nothing", func() {
			So(NewTable("t", "a").View(DefaultStyles()), ShouldEqual, "")
		})
	})
}
