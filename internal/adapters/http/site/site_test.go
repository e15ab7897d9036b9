package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/okian/porra/internal/domain/types"
	"github.com/okian/porra/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// recordingLogger keeps the messages of Error calls.
type recordingLogger struct {
	errors *[]string
}

func (l recordingLogger) Info(context.Context, string, ...logger.Field)  {}
func (l recordingLogger) Debug(context.Context, string, ...logger.Field) {}
func (l recordingLogger) Warn(context.Context, string, ...logger.Field)  {}
func (l recordingLogger) Fatal(context.Context, string, ...logger.Field) {}
func (l recordingLogger) Error(_ context.Context, msg string, _ ...logger.Field) {
	*l.errors = append(*l.errors, msg)
}
func (l recordingLogger) Named(string) logger.Logger { return l }

type viewFunc func(ctx context.Context) (types.View, error)

func (f viewFunc) View(ctx context.Context) (types.View, error) { return f(ctx) }

func sampleView() types.View {
	ger := &types.Team{Name: "Alemania", Code: "ger", Flag: "assets/country-flags/ger.png"}
	sco := &types.Team{Name: "Escocia", Code: "sco", Flag: "assets/country-flags/sco.png"}
	return types.View{
		GeneratedAt: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		Source:      "upstream",
		Leaderboard: []types.Entry{
			{Position: 1, Name: "Ana", Total: 5, Exact: 1},
			{Position: 2, Name: "Luis", Total: 0},
		},
		Grid: types.Grid{
			Participants: []string{"Ana", "Luis"},
			Rows: []types.GridRow{
				{Key: "separator:matchday_1", Kind: "separator", Stage: "matchday_1", Title: "Jornada 1"},
				{
					Key: "Alemania-Escocia", Kind: "match", Stage: "matchday_1",
					Date: "Vie, 14 Jun, 21:00", Home: ger, Away: sco, Result: "5-1",
					Cells: []types.Cell{
						{Participant: "Ana", Text: "5-1", Class: "exact"},
						{Participant: "Luis", Text: "error", Class: "not_applicable", Error: "missing field"},
					},
				},
				{
					Key: "winner", Kind: "winner", Stage: "final", Title: "Campeón",
					Cells: []types.Cell{
						{Participant: "Ana", Class: "pending", Teams: []types.Team{{Name: "España", Decoration: "plain"}}},
						{Participant: "Luis", Class: "miss", Teams: []types.Team{{Name: "Italia", Decoration: "struck"}}},
					},
				},
			},
			Styles: []types.Style{{MatchKey: "Alemania-Escocia", Participant: "Ana", Class: "exact", Color: "#92ff9273"}},
		},
	}
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered site", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()
		Register(ctx, mux, viewFunc(func(context.Context) (types.View, error) { return sampleView(), nil }), "")

		Convey("When requesting the page", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")

			doc, err := goquery.NewDocumentFromReader(w.Body)
			So(err, ShouldBeNil)

			Convey("Then the leaderboard lists every participant in order", func() {
				So(doc.Find("#leaderboard thead th").Length(), ShouldEqual, 10)
				So(doc.Find("#leaderboard thead th").First().Text(), ShouldEqual, "Pos.")
				rows := doc.Find("#leaderboard tbody tr")
				So(rows.Length(), ShouldEqual, 2)
				So(rows.First().Find("td").Eq(1).Text(), ShouldEqual, "Ana")
				So(rows.Last().Find("td").Eq(2).Text(), ShouldEqual, "0")
			})

			Convey("Then match cells carry flags and colours", func() {
				match := doc.Find(`#matches tr[data-key="Alemania-Escocia"]`)
				So(match.Length(), ShouldEqual, 1)
				src, _ := match.Find("img.flag").First().Attr("src")
				So(src, ShouldEqual, "/assets/country-flags/ger.png")
				style, ok := match.Find("td.exact").Attr("style")
				So(ok, ShouldBeTrue)
				So(style, ShouldContainSubstring, "#92ff9273")
				title, _ := match.Find("td.not_applicable").Attr("title")
				So(title, ShouldEqual, "missing field")
			})

			Convey("Then separators span the table and the champion row is decorated", func() {
				sep := doc.Find("#matches tr.separator td")
				So(sep.Text(), ShouldEqual, "Jornada 1")
				span, _ := sep.Attr("colspan")
				So(span, ShouldEqual, "5")
				So(doc.Find("#matches tr.winner span.struck").Text(), ShouldEqual, "Italia")
				So(doc.Find("#source").Text(), ShouldEqual, "upstream")
			})
		})

		Convey("When requesting the stylesheet", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/styles.css", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When requesting an unknown path", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When posting to the page", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a failing scoring run", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux, viewFunc(func(context.Context) (types.View, error) {
			return types.View{}, errors.New("boom")
		}), "")

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldContainSubstring, ErrServe.Error())
	})

	Convey("Given an assets directory", t, func() {
		dir := t.TempDir()
		So(os.MkdirAll(filepath.Join(dir, "country-flags"), 0o755), ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, "country-flags", "ger.png"), []byte("png"), 0o644), ShouldBeNil)

		mux := http.NewServeMux()
		Register(context.Background(), mux, viewFunc(func(context.Context) (types.View, error) { return sampleView(), nil }), dir)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/country-flags/ger.png", nil))

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldEqual, "png")
	})
}

func TestSiteLogger(t *testing.T) {
	failing := viewFunc(func(context.Context) (types.View, error) { return types.View{}, errors.New("boom") })

	Convey("Given a handler built without a logger option", t, func() {
		var h *RootHandler
		So(func() { h = NewRootHandler(failing) }, ShouldNotPanic)

		Convey("When the scoring run fails", func() {
			w := httptest.NewRecorder()
			So(func() { h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil)) }, ShouldNotPanic)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})

	Convey("Given a site registered with a logger", t, func() {
		var got []string
		mux := http.NewServeMux()
		Register(context.Background(), mux, failing, "", WithLogger(recordingLogger{errors: &got}))

		Convey("When the scoring run fails", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then the failure goes to that logger", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(got, ShouldResemble, []string{"scoring run failed"})
			})
		})

		Convey("When a nil logger is passed", func() {
			So(NewRootHandler(failing, WithLogger(nil)).logger, ShouldNotBeNil)
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		So(ErrRender.Error(), ShouldEqual, "site render failed")
		So(ErrServe.Error(), ShouldEqual, "site serve failed")
	})
}

func TestRegister(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.TODO(), nil, nil, "") }, ShouldPanicWith, "mux is nil")
	})
}
