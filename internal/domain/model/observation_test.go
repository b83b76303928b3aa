package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/scout/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func validObservation() model.Observation {
	return model.Observation{
		MatchNumber:  12,
		TeamNumber:   100,
		Autonomous:   model.AutoHigh,
		High:         2,
		Middle:       1,
		MinibotPlace: 0,
		Penalties:    1,
		Card:         model.CardNone,
		Comment:      "fast cycles",
	}
}

func TestObservation_Validate(t *testing.T) {
	convey.Convey("Given an observation", t, func() {
		obs := validObservation()

		convey.Convey("When every field is in range", func() {
			convey.Convey("Then validation should pass", func() {
				convey.So(obs.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the team number is missing", func() {
			obs.TeamNumber = 0
			err := obs.Validate()

			convey.Convey("Then it should be rejected with the field name", func() {
				convey.So(errors.Is(err, model.ErrInvalidObservation), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "team_number")
			})
		})

		convey.Convey("When the autonomous tier is out of range", func() {
			obs.Autonomous = 4
			err := obs.Validate()

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, model.ErrInvalidObservation), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "autonomous must be <= 3")
			})
		})

		convey.Convey("When several counts are negative", func() {
			obs.High = -1
			obs.Penalties = -2
			obs.Card = 3
			err := obs.Validate()

			convey.Convey("Then every offending field should be reported", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "high must be >= 0")
				convey.So(err.Error(), convey.ShouldContainSubstring, "penalties must be >= 0")
				convey.So(err.Error(), convey.ShouldContainSubstring, "card must be <= 2")
			})
		})
	})
}

func TestParseOrdinals(t *testing.T) {
	convey.Convey("Given tier and card names", t, func() {
		convey.Convey("When parsing names and ordinals", func() {
			high, err1 := model.ParseAutonomousTier(" High ")
			mid, err2 := model.ParseAutonomousTier("2")
			red, err3 := model.ParseCardLevel("red")
			none, err4 := model.ParseCardLevel("0")

			convey.Convey("Then they should map to the ordinal values", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(err3, convey.ShouldBeNil)
				convey.So(err4, convey.ShouldBeNil)
				convey.So(high, convey.ShouldEqual, model.AutoHigh)
				convey.So(mid, convey.ShouldEqual, model.AutoMiddle)
				convey.So(red, convey.ShouldEqual, model.CardRed)
				convey.So(none, convey.ShouldEqual, model.CardNone)
			})
		})

		convey.Convey("When parsing unknown values", func() {
			_, err1 := model.ParseAutonomousTier("top")
			_, err2 := model.ParseCardLevel("3")

			convey.Convey("Then they should fail", func() {
				convey.So(err1, convey.ShouldNotBeNil)
				convey.So(err2, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When formatting", func() {
			convey.So(model.AutoLow.String(), convey.ShouldEqual, "low")
			convey.So(model.CardYellow.String(), convey.ShouldEqual, "yellow")
			convey.So(model.AutonomousTier(9).String(), convey.ShouldEqual, "tier(9)")
		})
	})
}

func TestOptionalFloat(t *testing.T) {
	convey.Convey("Given optional floats", t, func() {
		convey.Convey("When undefined", func() {
			var f model.OptionalFloat
			b, err := json.Marshal(f)

			convey.Convey("Then it should encode as null and render as a dash", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, "null")
				convey.So(f.Format(2), convey.ShouldEqual, "-")
			})
		})

		convey.Convey("When defined", func() {
			f := model.Some(2.5)
			b, err := json.Marshal(f)

			convey.Convey("Then it should encode as a number", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, "2.5")
				convey.So(f.Format(2), convey.ShouldEqual, "2.50")
			})
		})

		convey.Convey("When decoding", func() {
			var s model.TeamSummary
			err := json.Unmarshal([]byte(`{"team_number":7,"avg_minibot_place":null}`), &s)
			var d model.TeamSummary
			err2 := json.Unmarshal([]byte(`{"team_number":7,"avg_minibot_place":3}`), &d)

			convey.Convey("Then null and numbers should both round-trip", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(s.AvgMinibotPlace.Valid, convey.ShouldBeFalse)
				convey.So(d.AvgMinibotPlace, convey.ShouldResemble, model.Some(3))
			})
		})
	})
}
