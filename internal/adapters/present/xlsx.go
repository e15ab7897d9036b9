package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/porra/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetLeaderboard = "Clasificación"
	SheetMatches     = "Partidos"
)

// WriteXLSX writes the leaderboard and the grid of v as a two sheet workbook.
func WriteXLSX(w io.Writer, v types.View) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetLeaderboard); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeLeaderboard(f, v.Leaderboard); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetMatches); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeGrid(f, v.Grid); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeLeaderboard(f *excelize.File, entries []types.Entry) error {
	header := make([]any, len(LeaderboardColumns))
	for i, c := range LeaderboardColumns {
		header[i] = c.Title
	}
	if err := setRow(f, SheetLeaderboard, 1, header); err != nil {
		return err
	}
	for i, e := range entries {
		if err := setRow(f, SheetLeaderboard, i+2, EntryValues(e)); err != nil {
			return err
		}
	}
	return nil
}

func writeGrid(f *excelize.File, g types.Grid) error {
	header := []any{"Date", "Home vs Away", "Result"}
	for _, p := range g.Participants {
		header = append(header, p)
	}
	if err := setRow(f, SheetMatches, 1, header); err != nil {
		return err
	}

	fills := map[string]int{}
	for _, s := range g.Styles {
		if _, ok := fills[s.Color]; ok {
			continue
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb(s.Color)}},
		})
		if err != nil {
			return fmt.Errorf("cell style: %w", err)
		}
		fills[s.Color] = id
	}
	colors := make(map[string]string, len(g.Styles))
	for _, s := range g.Styles {
		colors[s.MatchKey+"\x00"+s.Participant] = s.Color
	}

	for i, r := range g.Rows {
		rowNum := i + 2
		values := []any{r.Date, matchText(r), r.Result}
		for _, c := range r.Cells {
			text := c.Text
			if c.Error != "" {
				text = "error"
			}
			values = append(values, text)
		}
		if err := setRow(f, SheetMatches, rowNum, values); err != nil {
			return err
		}
		for p, c := range r.Cells {
			color, ok := colors[r.Key+"\x00"+c.Participant]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(p+4, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetMatches, cell, cell, fills[color]); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}
	return nil
}

func matchText(r types.GridRow) string {
	switch {
	case r.Home != nil && r.Away != nil:
		return r.Home.Name + " vs " + r.Away.Name
	case r.Home != nil:
		return r.Title + ": " + r.Home.Name
	default:
		return r.Title
	}
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// rgb drops the alpha channel of "#rrggbbaa".
func rgb(color string) string {
	c := strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(c) > 6 {
		c = c[:6]
	}
	return c
}
