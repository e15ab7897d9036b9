package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/okian/porra/internal/adapters/present"
)

// ExportHandler serves the workbook and the chart.
type ExportHandler struct {
	deps ViewDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ViewDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleXLSX handles GET /leaderboard.xlsx.
func (h *ExportHandler) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_xlsx"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	v, err := h.deps.View(r.Context())
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	var buf bytes.Buffer
	if err := present.WriteXLSX(&buf, v); err != nil {
		writeError(w, http.StatusInternalServerError, "render_error", WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="porra.xlsx"`)
	writeBytes(w, xlsxContentType, buf.Bytes())
}

// HandlePNG handles GET /leaderboard.png.
func (h *ExportHandler) HandlePNG(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_png"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	v, err := h.deps.View(r.Context())
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	var buf bytes.Buffer
	if err := present.RenderChart(&buf, v.Leaderboard); err != nil {
		writeError(w, http.StatusInternalServerError, "render_error", WrapKind(op, ErrRender, err))
		return
	}
	writeBytes(w, "image/png", buf.Bytes())
}

func writeBytes(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
