// Package site renders the league page: leaderboard plus match grid.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/porra/internal/adapters/present"
	"github.com/okian/porra/internal/domain/types"
	"github.com/okian/porra/pkg/logger"
)

// Error constants.
var (
	ErrRender = errors.New("site render failed")
	ErrServe  = errors.New("site serve failed")
)

// ViewSource runs a scoring pass.
type ViewSource interface {
	View(ctx context.Context) (types.View, error)
}

// Register attaches the page at / , the stylesheet at /static/ and, when
// assetsDir is set, the flag images under /assets/.
func Register(_ context.Context, mux *http.ServeMux, src ViewSource, assetsDir string, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/{$}", NewRootHandler(src, opts...))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	if assetsDir != "" {
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
	}
}

// RootHandler renders the league page.
type RootHandler struct {
	src    ViewSource
	logger logger.Logger
}

// NewRootHandler creates a new root handler. Without WithLogger it logs nothing.
func NewRootHandler(src ViewSource, opts ...Option) *RootHandler {
	h := &RootHandler{src: src, logger: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type cell struct {
	types.Cell
	Color string
}

type row struct {
	types.GridRow
	Cells []cell
}

type page struct {
	View    types.View
	Columns []present.Column
	Board   [][]any
	Rows    []row
	// Span is the width of a separator row.
	Span int
}

func newPage(v types.View) page {
	colors := make(map[string]string, len(v.Grid.Styles))
	for _, s := range v.Grid.Styles {
		colors[s.MatchKey+"\x00"+s.Participant] = s.Color
	}
	p := page{View: v, Columns: present.LeaderboardColumns, Rows: make([]row, len(v.Grid.Rows))}
	p.Span = 3 + len(v.Grid.Participants)
	for _, e := range v.Leaderboard {
		p.Board = append(p.Board, present.EntryValues(e))
	}
	for i, r := range v.Grid.Rows {
		out := row{GridRow: r, Cells: make([]cell, len(r.Cells))}
		for j, c := range r.Cells {
			out.Cells[j] = cell{Cell: c, Color: colors[r.Key+"\x00"+c.Participant]}
		}
		p.Rows[i] = out
	}
	return p
}

// ServeHTTP handles GET /.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	v, err := h.src.View(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "scoring run failed", logger.Error(err))
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPage(v)); err != nil {
		h.logger.Error(r.Context(), "render page", logger.Error(err))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
