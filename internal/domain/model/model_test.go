package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/porra/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	convey.Convey("Given scores", t, func() {
		convey.Convey("Then the outcome follows the goal difference", func() {
			convey.So(model.Score{Home: 2, Away: 1}.Outcome(), convey.ShouldEqual, model.HomeWin)
			convey.So(model.Score{Home: 0, Away: 0}.Outcome(), convey.ShouldEqual, model.Draw)
			convey.So(model.Score{Home: 1, Away: 3}.Outcome(), convey.ShouldEqual, model.AwayWin)
			convey.So(model.Score{Home: 1, Away: 3}.String(), convey.ShouldEqual, "1 - 3")
		})

		convey.Convey("When parsing text", func() {
			s, err := model.ParseScore(" 2 - 0 ", "-")
			convey.So(err, convey.ShouldBeNil)
			convey.So(s, convey.ShouldResemble, model.Score{Home: 2, Away: 0})

			for _, bad := range []string{"2:0", "a-1", "1-", "-1-2", ""} {
				_, err := model.ParseScore(bad, "-")
				convey.So(errors.Is(err, model.ErrMalformedScore), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When converting feed pairs", func() {
			s, ok := model.ScoreFromPair([]int{1, 1})
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s, convey.ShouldResemble, model.Score{Home: 1, Away: 1})

			_, ok = model.ScoreFromPair([]int{1})
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = model.ScoreFromPair(nil)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestStage(t *testing.T) {
	convey.Convey("Given feed round names", t, func() {
		cases := map[string]model.Stage{
			"Matchday 1":     model.StageGroup,
			"Matchday 13":    model.StageGroup,
			"Round of 16":    model.StageRoundOf16,
			"Quarter-finals": model.StageQuarterFinal,
			"Quarter-final":  model.StageQuarterFinal,
			"Semi-finals":    model.StageSemiFinal,
			"Final":          model.StageFinal,
		}
		for name, want := range cases {
			got, ok := model.StageOf(name)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(got, convey.ShouldEqual, want)
		}

		_, ok := model.StageOf("Third place play-off")
		convey.So(ok, convey.ShouldBeFalse)

		convey.So(model.StageGroup.IsKnockout(), convey.ShouldBeFalse)
		convey.So(model.StageFinal.IsKnockout(), convey.ShouldBeTrue)
		convey.So(model.StageSemiFinal.String(), convey.ShouldEqual, "semi_final")
		convey.So(model.StageRoundOf16.Title(), convey.ShouldEqual, "Octavos de final")
	})
}

func TestAnnotation(t *testing.T) {
	convey.Convey("Given annotations", t, func() {
		guess := model.Score{Home: 2, Away: 2}
		convey.So(model.Annotation{Guess: &guess}.Display(), convey.ShouldEqual, "2 - 2")
		convey.So(model.Annotation{Teams: []model.TeamMark{{Name: "España"}, {Name: "Francia"}}}.Display(),
			convey.ShouldEqual, "España - Francia")

		failed := model.Annotation{Guess: &guess, Err: errors.New("boom")}
		convey.So(failed.Failed(), convey.ShouldBeTrue)
		convey.So(failed.Display(), convey.ShouldEqual, "error")
		convey.So(model.Annotation{}.Display(), convey.ShouldEqual, "")
		convey.So(model.Pairing("Suiza", "Alemania"), convey.ShouldEqual, "Suiza-Alemania")
	})
}
