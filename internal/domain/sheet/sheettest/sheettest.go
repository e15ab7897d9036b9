// Package sheettest builds prediction sheets for tests.
package sheettest

import (
	"fmt"
	"strings"

	"github.com/okian/porra/internal/domain/sheet"
)

// Filler is the content of lines no test has set.
const Filler = "sin pronóstico"

// Sheet is a mutable sheet of Schema.Lines lines.
type Sheet struct {
	schema sheet.Schema
	lines  []string
}

// New returns a sheet where every group guess is "<key>·Grupo|0-9" (a miss for
// any realistic result) and every other line is Filler.
func New(schema sheet.Schema) *Sheet {
	s := &Sheet{schema: schema, lines: make([]string, schema.Lines)}
	for i := range s.lines {
		s.lines[i] = Filler
	}
	if w, ok := schema.Window(sheet.FieldGroupGuesses); ok {
		for i := 0; i < w.Width && i < len(sheet.GroupFixtures); i++ {
			s.lines[w.Offset+i] = s.guess(sheet.GroupFixtures[i], "Grupo", 0, 9)
		}
	}
	return s
}

func (s *Sheet) guess(key, label string, home, away int) string {
	f := s.schema.Format
	return fmt.Sprintf("%s%s%s%s%d%s%d", key, f.Label, label, f.Score, home, f.Goals, away)
}

// Group sets the guess of a group match key.
func (s *Sheet) Group(key string, home, away int) *Sheet {
	i, ok := sheet.FixtureIndex(key)
	if !ok {
		panic("sheettest: unknown group key " + key)
	}
	w, _ := s.schema.Window(sheet.FieldGroupGuesses)
	return s.Set(w.Offset+i, s.guess(key, "Grupo", home, away))
}

// Teams fills the window of f from its first line.
func (s *Sheet) Teams(f sheet.Field, names ...string) *Sheet {
	w, ok := s.schema.Window(f)
	if !ok {
		panic("sheettest: field not in schema " + string(f))
	}
	for i, n := range names {
		s.Set(w.Offset+i, n)
	}
	return s
}

// Knockout sets the guesses of a knockout guess field; each pairing is "Home-Away".
func (s *Sheet) Knockout(f sheet.Field, pairings []string, scores ...[2]int) *Sheet {
	w, ok := s.schema.Window(f)
	if !ok {
		panic("sheettest: field not in schema " + string(f))
	}
	for i, p := range pairings {
		var sc [2]int
		if i < len(scores) {
			sc = scores[i]
		}
		s.Set(w.Offset+i, s.guess(p, "Eliminatoria", sc[0], sc[1]))
	}
	return s
}

// Champion sets the champion pick.
func (s *Sheet) Champion(name string) *Sheet {
	return s.Teams(sheet.FieldChampion, name)
}

// Set replaces line i.
func (s *Sheet) Set(i int, line string) *Sheet {
	s.lines[i] = line
	return s
}

// Truncate keeps the first n lines.
func (s *Sheet) Truncate(n int) *Sheet {
	if n < len(s.lines) {
		s.lines = s.lines[:n]
	}
	return s
}

// Lines returns a copy of the lines.
func (s *Sheet) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Text renders the sheet with blank lines between sections, as real files have.
func (s *Sheet) Text() string {
	var b strings.Builder
	for i, l := range s.lines {
		if i > 0 && i%12 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

// Parse decodes the sheet for participant name.
func (s *Sheet) Parse(name string) *sheet.Prediction {
	return sheet.NewParser(s.schema).Parse(name, s.lines)
}
