package present

import (
	"fmt"
	"io"

	"github.com/okian/porra/internal/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartHeight   = 480
	chartMinWidth = 480
	barWidth      = 48
	barSpacing    = 24
)

var (
	chartBackground = drawing.ColorFromHex("ffffff")
	barFill         = drawing.ColorFromHex("3b82f6")
	leaderFill      = drawing.ColorFromHex("22c55e")
)

// RenderChart draws the totals of entries as a PNG bar chart, leaders in green.
func RenderChart(w io.Writer, entries []types.Entry) error {
	top := 0
	for _, e := range entries {
		if e.Total > top {
			top = e.Total
		}
	}
	if top == 0 {
		return renderEmpty(w)
	}

	bars := make([]chart.Value, len(entries))
	for i, e := range entries {
		fill := barFill
		if e.Position == 1 {
			fill = leaderFill
		}
		bars[i] = chart.Value{
			Label: e.Name,
			Value: float64(e.Total),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	width := len(entries)*(barWidth+barSpacing) + 120
	if width < chartMinWidth {
		width = chartMinWidth
	}
	graph := chart.BarChart{
		Title:      "Clasificación",
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// renderEmpty draws a placeholder when nobody has points yet. The chart still
// needs one visible series, drawn transparent.
func renderEmpty(w io.Writer) error {
	graph := chart.Chart{
		Width:      chartMinWidth,
		Height:     chartHeight / 2,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.XAxis{Style: chart.Hidden()},
		YAxis:      chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{chart.ContinuousSeries{
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				const msg = "Sin puntos todavía"
				r.SetFontColor(drawing.ColorFromHex("6b7280"))
				r.SetFontSize(16)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
