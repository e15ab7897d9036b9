package sheet

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName derives a participant name from a sheet file name: the part
// before the first dot, title-cased.
func DisplayName(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return cases.Title(language.Spanish).String(strings.TrimSpace(base))
}

// LoadDir parses every file under dir matching the glob pattern, in the order
// of sortSheets.
func LoadDir(ctx context.Context, dir, pattern string, p *Parser) ([]*Prediction, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("predictions dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("predictions dir: %s is not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir), pattern, p)
}

// sortSheets orders paths by display name. Among paths sharing a name, the
// one whose base is only the name plus extension ("ana.txt") comes before
// variants such as "ana.copia.txt"; remaining ties go by path.
func sortSheets(paths []string) {
	type entry struct {
		path    string
		name    string
		variant bool
	}
	entries := make([]entry, len(paths))
	for i, p := range paths {
		base := path.Base(strings.ReplaceAll(p, "\\", "/"))
		entries[i] = entry{path: p, name: DisplayName(p), variant: strings.Count(base, ".") > 1}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.name != b.name:
			return a.name < b.name
		case a.variant != b.variant:
			return !a.variant
		default:
			return a.path < b.path
		}
	})
	for i, e := range entries {
		paths[i] = e.path
	}
}

// LoadFS is LoadDir over an fs.FS.
func LoadFS(ctx context.Context, fsys fs.FS, pattern string, p *Parser) ([]*Prediction, error) {
	if pattern == "" {
		pattern = "*.txt"
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sortSheets(matches)

	out := make([]*Prediction, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open sheet %s: %w", name, err)
		}
		pred, err := p.ParseReader(DisplayName(name), f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
	}
	return out, nil
}
