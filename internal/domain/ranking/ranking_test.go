package ranking_test

import (
	"testing"

	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func rows(totals ...int) []model.ScoreRow {
	out := make([]model.ScoreRow, len(totals))
	for i, t := range totals {
		out[i] = model.ScoreRow{Name: string(rune('A' + i)), Total: t}
	}
	return out
}

func names(rs []model.ScoreRow) string {
	s := ""
	for _, r := range rs {
		s += r.Name
	}
	return s
}

func positions(rs []model.ScoreRow) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Position
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given totals with ties", t, func() {
		in := rows(42, 50, 30, 42)
		ranked := ranking.Rank(in)

		Convey("Then rows are sorted descending with dense shared positions", func() {
			So(names(ranked), ShouldEqual, "BADC")
			So(positions(ranked), ShouldResemble, []int{1, 2, 2, 3})
		})

		Convey("Then the input is untouched", func() {
			So(names(in), ShouldEqual, "ABCD")
			So(in[0].Position, ShouldEqual, 0)
		})

		Convey("Then rows are found by name", func() {
			r, ok := ranking.Find(ranked, "D")
			So(ok, ShouldBeTrue)
			So(r.Position, ShouldEqual, 2)
			_, ok = ranking.Find(ranked, "Z")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given everybody tied", t, func() {
		ranked := ranking.Rank(rows(0, 0, 0))

		So(names(ranked), ShouldEqual, "ABC")
		So(positions(ranked), ShouldResemble, []int{1, 1, 1})
	})

	Convey("Given no rows", t, func() {
		So(ranking.Rank(nil), ShouldBeEmpty)
	})

	Convey("Given distinct totals", t, func() {
		ranked := ranking.Rank(rows(10, 20, 30))
		So(positions(ranked), ShouldResemble, []int{1, 2, 3})
		So(ranked[0].Total, ShouldBeGreaterThanOrEqualTo, ranked[1].Total)
	})
}
