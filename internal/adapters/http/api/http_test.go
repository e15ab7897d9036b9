package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/porra/internal/adapters/http/api"
	"github.com/okian/porra/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

type mockDependencies struct {
	view    types.View
	viewErr error
	calls   int
}

func (m *mockDependencies) View(ctx context.Context) (types.View, error) {
	m.calls++
	if m.viewErr != nil {
		return types.View{}, m.viewErr
	}
	return m.view, nil
}

func (m *mockDependencies) Participant(ctx context.Context, name string) (types.Entry, error) {
	if m.viewErr != nil {
		return types.Entry{}, m.viewErr
	}
	for _, e := range m.view.Leaderboard {
		if e.Name == name {
			return e, nil
		}
	}
	return types.Entry{}, fmt.Errorf("participant %w: %q", types.ErrNotFound, name)
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func sampleView() types.View {
	return types.View{
		GeneratedAt: time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC),
		Source:      "upstream",
		Champion:    "España",
		Leaderboard: []types.Entry{
			{Position: 1, Name: "Ana", Total: 180, Exact: 3, Champion: 1},
			{Position: 2, Name: "Luis", Total: 15, Exact: 1, Outcome: 1},
			{Position: 2, Name: "Eva", Total: 15, Outcome: 3},
		},
		Grid: types.Grid{
			Participants: []string{"Ana", "Luis", "Eva"},
			Rows: []types.GridRow{{
				Key: "Alemania-Escocia", Kind: "match", Stage: "group", Date: "Vie, 14 Jun, 21:00",
				Home:   &types.Team{Name: "Alemania", Code: "GER", Flag: "assets/country-flags/GER.png"},
				Away:   &types.Team{Name: "Escocia", Code: "SCO", Flag: "assets/country-flags/SCO.png"},
				Result: "5 - 1",
				Cells: []types.Cell{
					{Participant: "Ana", Text: "5 - 1", Class: "exact"},
					{Participant: "Luis", Text: "2 - 0", Class: "correct_outcome"},
					{Participant: "Eva", Text: "error", Class: "not_applicable", Error: "malformed guess"},
				},
			}},
			Styles: []types.Style{
				{MatchKey: "Alemania-Escocia", Participant: "Ana", Class: "exact", Color: "#92ff9273"},
				{MatchKey: "Alemania-Escocia", Participant: "Luis", Class: "correct_outcome", Color: "#ffff0080"},
			},
		},
	}
}

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}).
		Register(context.Background(), mux)
	return mux
}

func get(mux http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{view: sampleView()}
		mux := newMux(deps)

		Convey("Then health answers with JSON", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then metrics are exposed", func() {
			w := get(mux, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats merge service and runtime figures", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["started"], ShouldEqual, true)
			So(body, ShouldContainKey, "goroutines")
		})

		Convey("Then unknown paths are not found", func() {
			So(get(mux, "/unknown").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestLeaderboard(t *testing.T) {
	Convey("Given a scored league", t, func() {
		deps := &mockDependencies{view: sampleView()}
		mux := newMux(deps)

		Convey("When the whole leaderboard is requested", func() {
			w := get(mux, "/api/leaderboard")

			Convey("Then every entry is returned in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Source   string       `json:"source"`
					Champion string       `json:"champion"`
					Entries  []types.Entry `json:"entries"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Source, ShouldEqual, "upstream")
				So(body.Champion, ShouldEqual, "España")
				So(len(body.Entries), ShouldEqual, 3)
				So(body.Entries[0].Name, ShouldEqual, "Ana")
				So(body.Entries[2].Position, ShouldEqual, 2)
			})
		})

		Convey("When a limit is given", func() {
			w := get(mux, "/api/leaderboard?limit=1")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Ana")
			So(w.Body.String(), ShouldNotContainSubstring, "Luis")
		})

		Convey("When the limit is invalid", func() {
			for _, q := range []string{"0", "-1", "diez"} {
				w := get(mux, "/api/leaderboard?limit="+q)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			}
			w := get(mux, fmt.Sprintf("/api/leaderboard?limit=%d", api.DefaultMaxLimit+1))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})

		Convey("When the method is not GET", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When scoring fails", func() {
			deps.viewErr = errors.New("disk on fire")
			w := get(mux, "/api/leaderboard")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "internal_error")
		})
	})
}

func TestMatchesAndParticipants(t *testing.T) {
	Convey("Given a scored league", t, func() {
		mux := newMux(&mockDependencies{view: sampleView()})

		Convey("Then the grid carries rows and styles", func() {
			w := get(mux, "/api/matches")
			So(w.Code, ShouldEqual, http.StatusOK)
			var g types.Grid
			So(json.Unmarshal(w.Body.Bytes(), &g), ShouldBeNil)
			So(g.Participants, ShouldResemble, []string{"Ana", "Luis", "Eva"})
			So(g.Rows[0].Cells[2].Error, ShouldEqual, "malformed guess")
			So(len(g.Styles), ShouldEqual, 2)
		})

		Convey("Then a participant is found by name", func() {
			w := get(mux, "/api/participants/Ana")
			So(w.Code, ShouldEqual, http.StatusOK)
			var e types.Entry
			So(json.Unmarshal(w.Body.Bytes(), &e), ShouldBeNil)
			So(e.Total, ShouldEqual, 180)
		})

		Convey("Then an unknown participant is a 404", func() {
			w := get(mux, "/api/participants/Nadie")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "not_found")
		})
	})
}

func TestExports(t *testing.T) {
	Convey("Given a scored league", t, func() {
		mux := newMux(&mockDependencies{view: sampleView()})

		Convey("Then the workbook opens", func() {
			w := get(mux, "/leaderboard.xlsx")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "porra.xlsx")
			f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
			So(err, ShouldBeNil)
			defer f.Close()
			So(f.GetSheetList(), ShouldResemble, []string{"Clasificación", "Partidos"})
		})

		Convey("Then the chart is a PNG", func() {
			w := get(mux, "/leaderboard.png")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
			So(bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")), ShouldBeTrue)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestID(r.Context())
		}))

		Convey("When the client sends none a uuid is assigned", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
			So(len(seen), ShouldEqual, 36)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
		})

		Convey("When the client sends one it is kept", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(seen, ShouldEqual, "abc-123")
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given wrapped API errors", t, func() {
		cause := errors.New("boom")
		err := api.WrapKind("api.op", api.ErrRender, cause)

		So(errors.Is(err, api.ErrRender), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "api.op: render failed: boom")
		So(api.Wrap("api.op", nil), ShouldBeNil)
		So(errors.Is(api.NewKind("api.op", api.ErrBadRequest), api.ErrBadRequest), ShouldBeTrue)
	})
}
