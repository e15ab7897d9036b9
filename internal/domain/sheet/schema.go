package sheet

import (
	"fmt"
	"sort"
)

// Field names a window of a prediction sheet.
type Field string

const (
	FieldGroupGuesses        Field = "group_guesses"
	FieldRoundOf16           Field = "round_of_16"
	FieldRoundOf16Guesses    Field = "round_of_16_guesses"
	FieldQuarterFinals       Field = "quarter_finals"
	FieldQuarterFinalGuesses Field = "quarter_final_guesses"
	FieldSemiFinals          Field = "semi_finals"
	FieldSemiFinalGuesses    Field = "semi_final_guesses"
	FieldFinalists           Field = "finalists"
	FieldFinalGuess          Field = "final_guess"
	FieldChampion            Field = "champion"
)

type fieldRule struct {
	width    int
	required bool
}

var fieldRules = map[Field]fieldRule{
	FieldGroupGuesses:        {width: len(GroupFixtures), required: true},
	FieldRoundOf16:           {width: 16, required: true},
	FieldQuarterFinals:       {width: 8, required: true},
	FieldSemiFinals:          {width: 4, required: true},
	FieldFinalists:           {width: 2, required: true},
	FieldChampion:            {width: 1, required: true},
	FieldRoundOf16Guesses:    {width: 8},
	FieldQuarterFinalGuesses: {width: 4},
	FieldSemiFinalGuesses:    {width: 2},
	FieldFinalGuess:          {width: 1},
}

// Window is a [Offset, Offset+Width) slice of the cleaned sheet lines.
type Window struct {
	Offset int `koanf:"offset" json:"offset"`
	Width  int `koanf:"width" json:"width"`
}

// End is the first line after the window.
func (w Window) End() int { return w.Offset + w.Width }

// Format holds the delimiters of a guess line:
// <key><Label><label><Score><home><Goals><away>.
type Format struct {
	Label string `koanf:"label" json:"label"`
	Score string `koanf:"score" json:"score"`
	Goals string `koanf:"goals" json:"goals"`
}

// DefaultFormat is "Alemania-Escocia·Grupo A|2-0".
var DefaultFormat = Format{Label: "·", Score: "|", Goals: "-"}

// Schema is a versioned layout of a prediction sheet.
type Schema struct {
	Name    string
	Lines   int
	Format  Format
	Windows map[Field]Window
}

// Window returns the window of f.
func (s Schema) Window(f Field) (Window, bool) {
	w, ok := s.Windows[f]
	return w, ok
}

// Validate checks required fields, widths and bounds.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSchema)
	}
	if s.Format.Score == "" || s.Format.Goals == "" {
		return fmt.Errorf("%w: %s: score and goals delimiters are required", ErrInvalidSchema, s.Name)
	}
	fields := make([]string, 0, len(fieldRules))
	for f := range fieldRules {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	for _, name := range fields {
		f := Field(name)
		rule := fieldRules[f]
		w, ok := s.Windows[f]
		if !ok {
			if rule.required {
				return fmt.Errorf("%w: %s: field %s is required", ErrInvalidSchema, s.Name, f)
			}
			continue
		}
		if w.Offset < 0 || w.Width <= 0 || w.Width > rule.width {
			return fmt.Errorf("%w: %s: field %s window %d+%d", ErrInvalidSchema, s.Name, f, w.Offset, w.Width)
		}
		if rule.required && w.Width != rule.width {
			return fmt.Errorf("%w: %s: field %s must be %d lines", ErrInvalidSchema, s.Name, f, rule.width)
		}
		if s.Lines > 0 && w.End() > s.Lines {
			return fmt.Errorf("%w: %s: field %s ends past line %d", ErrInvalidSchema, s.Name, f, s.Lines)
		}
	}
	for f := range s.Windows {
		if _, ok := fieldRules[f]; !ok {
			return fmt.Errorf("%w: %s: unknown field %s", ErrInvalidSchema, s.Name, f)
		}
	}
	return nil
}

// PreTournament is the layout of sheets filled in before kickoff. Group
// standings on lines 36-59 and the top scorer on line 105 are not scored.
var PreTournament = Schema{
	Name:   "pre_tournament",
	Lines:  107,
	Format: DefaultFormat,
	Windows: map[Field]Window{
		FieldGroupGuesses:        {Offset: 0, Width: 36},
		FieldRoundOf16:           {Offset: 60, Width: 16},
		FieldRoundOf16Guesses:    {Offset: 76, Width: 8},
		FieldQuarterFinals:       {Offset: 84, Width: 8},
		FieldQuarterFinalGuesses: {Offset: 92, Width: 4},
		FieldSemiFinals:          {Offset: 96, Width: 4},
		FieldSemiFinalGuesses:    {Offset: 100, Width: 2},
		FieldFinalists:           {Offset: 102, Width: 2},
		FieldFinalGuess:          {Offset: 104, Width: 1},
		FieldChampion:            {Offset: 106, Width: 1},
	},
}

// Knockout is the layout of sheets reissued once the round of 16 was set.
// It has no top scorer line.
var Knockout = Schema{
	Name:   "knockout",
	Lines:  106,
	Format: DefaultFormat,
	Windows: map[Field]Window{
		FieldGroupGuesses:        {Offset: 0, Width: 36},
		FieldRoundOf16:           {Offset: 60, Width: 16},
		FieldRoundOf16Guesses:    {Offset: 76, Width: 8},
		FieldQuarterFinals:       {Offset: 84, Width: 8},
		FieldQuarterFinalGuesses: {Offset: 92, Width: 4},
		FieldSemiFinals:          {Offset: 96, Width: 4},
		FieldSemiFinalGuesses:    {Offset: 100, Width: 2},
		FieldFinalists:           {Offset: 102, Width: 2},
		FieldFinalGuess:          {Offset: 104, Width: 1},
		FieldChampion:            {Offset: 105, Width: 1},
	},
}

// Registry resolves schemas by name.
type Registry struct {
	schemas map[string]Schema
}

// NewRegistry returns a registry holding the builtin schemas plus extra.
// Every schema is validated.
func NewRegistry(extra ...Schema) (*Registry, error) {
	r := &Registry{schemas: map[string]Schema{
		PreTournament.Name: PreTournament,
		Knockout.Name:      Knockout,
	}}
	for _, s := range extra {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		r.schemas[s.Name] = s
	}
	return r, nil
}

// Get returns the schema called name.
func (r *Registry) Get(name string) (Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return s, nil
}

// Names lists registered schema names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
