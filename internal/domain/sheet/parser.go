// Package sheet decodes participants' prediction sheets: plain text files with
// one field per non-blank line at offsets given by a Schema.
package sheet

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/okian/porra/internal/domain/model"
)

// Guess is one decoded "<key>·<label>|<home>-<away>" line.
type Guess struct {
	Key   string
	Label string
	Score model.Score
}

// GuessResult is a guess or the reason it could not be decoded.
type GuessResult struct {
	Guess Guess
	Err   error
}

// TeamList is a decoded list of team display names.
type TeamList struct {
	Names []string
	Err   error
}

// Has reports whether name is in the list.
func (l TeamList) Has(name string) bool {
	for _, n := range l.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Pick is a single decoded team.
type Pick struct {
	Name string
	Err  error
}

// Prediction is one participant's decoded sheet. It is never mutated after Parse.
type Prediction struct {
	Name   string
	Schema string
	Lines  int

	// Group has one entry per GroupFixtures line.
	Group []GuessResult
	// Advancers holds the teams predicted to play each knockout stage.
	// StageFinal holds the finalist pair.
	Advancers map[model.Stage]TeamList
	// Knockout holds the predicted pairings and scores per knockout stage.
	Knockout map[model.Stage][]GuessResult
	Champion Pick
}

// GroupGuess returns the guess for a group match key.
func (p *Prediction) GroupGuess(key string) (GuessResult, bool) {
	i, ok := FixtureIndex(key)
	if !ok || i >= len(p.Group) {
		return GuessResult{}, false
	}
	return p.Group[i], true
}

// Finalists is the predicted final pair.
func (p *Prediction) Finalists() TeamList {
	return p.Advancers[model.StageFinal]
}

// Parser decodes sheets with one schema.
type Parser struct {
	schema Schema
}

// NewParser returns a parser for schema.
func NewParser(schema Schema) *Parser {
	return &Parser{schema: schema}
}

// Schema returns the schema the parser reads.
func (p *Parser) Schema() Schema { return p.schema }

var advancerFields = map[model.Stage]Field{
	model.StageRoundOf16:    FieldRoundOf16,
	model.StageQuarterFinal: FieldQuarterFinals,
	model.StageSemiFinal:    FieldSemiFinals,
	model.StageFinal:        FieldFinalists,
}

var guessFields = map[model.Stage]Field{
	model.StageRoundOf16:    FieldRoundOf16Guesses,
	model.StageQuarterFinal: FieldQuarterFinalGuesses,
	model.StageSemiFinal:    FieldSemiFinalGuesses,
	model.StageFinal:        FieldFinalGuess,
}

// Parse decodes raw sheet lines. Failures are recorded per field and never
// stop the rest of the sheet from decoding.
func (p *Parser) Parse(name string, raw []string) *Prediction {
	lines := CleanLines(raw)
	pred := &Prediction{
		Name:      name,
		Schema:    p.schema.Name,
		Lines:     len(lines),
		Advancers: make(map[model.Stage]TeamList, len(advancerFields)),
		Knockout:  make(map[model.Stage][]GuessResult, len(guessFields)),
	}

	if w, ok := p.schema.Window(FieldGroupGuesses); ok {
		pred.Group = p.guesses(lines, w, FieldGroupGuesses)
	} else {
		pred.Group = make([]GuessResult, len(GroupFixtures))
		for i := range pred.Group {
			pred.Group[i].Err = fmt.Errorf("%w: %s", ErrMissingField, FieldGroupGuesses)
		}
	}

	for stage, f := range advancerFields {
		pred.Advancers[stage] = p.teamList(lines, f)
	}
	for stage, f := range guessFields {
		if w, ok := p.schema.Window(f); ok {
			pred.Knockout[stage] = p.guesses(lines, w, f)
		}
	}

	champ := p.teamList(lines, FieldChampion)
	switch {
	case champ.Err != nil:
		pred.Champion.Err = champ.Err
	case len(champ.Names) == 0:
		pred.Champion.Err = fmt.Errorf("%w: %s", ErrMissingField, FieldChampion)
	default:
		pred.Champion.Name = champ.Names[0]
	}
	return pred
}

// ParseReader reads and decodes a sheet.
func (p *Parser) ParseReader(name string, r io.Reader) (*Prediction, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return p.Parse(name, raw), nil
}

// guesses decodes each line of w independently. Lines past the end of the
// sheet fail with ErrMissingField.
func (p *Parser) guesses(lines []string, w Window, f Field) []GuessResult {
	out := make([]GuessResult, w.Width)
	for i := range out {
		idx := w.Offset + i
		if idx >= len(lines) {
			out[i].Err = fmt.Errorf("%w: %s line %d", ErrMissingField, f, idx)
			continue
		}
		g, err := ParseGuess(lines[idx], p.schema.Format)
		if err != nil {
			out[i].Err = fmt.Errorf("%s line %d: %w", f, idx, err)
			continue
		}
		out[i].Guess = g
	}
	return out
}

// teamList decodes a window of team names. The whole field fails when any of
// its lines lies past the end of the sheet.
func (p *Parser) teamList(lines []string, f Field) TeamList {
	w, ok := p.schema.Window(f)
	if !ok {
		return TeamList{Err: fmt.Errorf("%w: %s not in schema %s", ErrMissingField, f, p.schema.Name)}
	}
	if w.End() > len(lines) {
		return TeamList{Err: fmt.Errorf("%w: %s needs lines %d-%d, sheet has %d", ErrMissingField, f, w.Offset, w.End()-1, len(lines))}
	}
	names := make([]string, 0, w.Width)
	for _, line := range lines[w.Offset:w.End()] {
		names = append(names, teamName(line, p.schema.Format))
	}
	return TeamList{Names: names}
}

// teamName drops an optional "<label>·" prefix.
func teamName(line string, f Format) string {
	if f.Label != "" {
		if i := strings.LastIndex(line, f.Label); i >= 0 {
			line = line[i+len(f.Label):]
		}
	}
	return strings.TrimSpace(line)
}

// ParseGuess decodes "<key><label-delim><label><score-delim><home><goals-delim><away>".
// The label part is optional.
func ParseGuess(line string, f Format) (Guess, error) {
	head, score, ok := strings.Cut(line, f.Score)
	if !ok {
		return Guess{}, fmt.Errorf("%w: %q has no %q", ErrMalformedGuess, line, f.Score)
	}
	s, err := model.ParseScore(score, f.Goals)
	if err != nil {
		return Guess{}, fmt.Errorf("%w: %q: %v", ErrMalformedGuess, line, err)
	}
	g := Guess{Key: strings.TrimSpace(head), Score: s}
	if f.Label != "" {
		if key, label, ok := strings.Cut(head, f.Label); ok {
			g.Key = strings.TrimSpace(key)
			g.Label = strings.TrimSpace(label)
		}
	}
	if g.Key == "" {
		return Guess{}, fmt.Errorf("%w: %q has no match key", ErrMalformedGuess, line)
	}
	return g, nil
}

// CleanLines trims every line and drops blank ones.
func CleanLines(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
