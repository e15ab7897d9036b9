// Package teams maps feed team names (English) to display names (Spanish),
// and to the 3-letter codes used for flag assets.
package teams

import (
	"fmt"
	"path"
	"strings"
)

const (
	// Placeholder stands for a team that is not determined yet.
	Placeholder = "--"

	flagDir     = "assets/country-flags"
	unknownFlag = "unknown"
)

// Normalizer is a read-only lookup over the name and code tables.
// The zero value is not usable; use New or NewNormalizer.
type Normalizer struct {
	toDisplay  map[string]string
	toExternal map[string]string
	codes      map[string]string
}

// New returns a Normalizer over the Euro 2024 tables.
func New() *Normalizer {
	return NewNormalizer(displayNames, teamCodes)
}

// NewNormalizer builds a Normalizer from an external→display name table and an
// external name→code table. The tables are copied.
func NewNormalizer(names, codes map[string]string) *Normalizer {
	n := &Normalizer{
		toDisplay:  make(map[string]string, len(names)),
		toExternal: make(map[string]string, len(names)),
		codes:      make(map[string]string, len(codes)),
	}
	for ext, disp := range names {
		n.toDisplay[ext] = disp
		n.toExternal[disp] = ext
	}
	for ext, code := range codes {
		n.codes[ext] = strings.ToUpper(code)
	}
	return n
}

// ToDisplay returns the display name of an external name. Unknown names pass through.
func (n *Normalizer) ToDisplay(external string) string {
	if d, ok := n.toDisplay[external]; ok {
		return d
	}
	return external
}

// ToExternal returns the external name of a display name. Unknown names pass through.
func (n *Normalizer) ToExternal(display string) string {
	if e, ok := n.toExternal[display]; ok {
		return e
	}
	return display
}

// CodeOf returns the 3-letter code of an external name.
func (n *Normalizer) CodeOf(external string) (string, error) {
	if c, ok := n.codes[external]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTeam, external)
}

// DisplayCode returns the code of a display name, or "" when unknown.
func (n *Normalizer) DisplayCode(display string) string {
	c, err := n.CodeOf(n.ToExternal(display))
	if err != nil {
		return ""
	}
	return c
}

// IsPlaceholder reports whether name stands for an undetermined team.
func IsPlaceholder(name string) bool {
	return strings.TrimSpace(name) == Placeholder
}

// FlagAsset returns the flag image path for code, or the unknown flag when code is empty.
func FlagAsset(code string) string {
	if code == "" {
		code = unknownFlag
	}
	return path.Join(flagDir, code+".png")
}
