// Package match provides glob and regular expression matching over repo-relative paths.
package match

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Any reports whether path matches at least one glob. "**" spans any number of
// directories, including none, so "**/*.go" matches "main.go". Invalid
// patterns never match.
func Any(path string, globs []string) bool {
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Filter returns the paths matching any glob, in input order.
func Filter(paths, globs []string) []string {
	out := []string{}
	for _, p := range paths {
		if Any(p, globs) {
			out = append(out, p)
		}
	}
	return out
}

// ValidGlob reports whether a glob pattern is syntactically valid.
func ValidGlob(glob string) bool {
	return doublestar.ValidatePattern(glob)
}

// Pattern is a compiled case-insensitive regex that remembers its source text.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// MatchString reports whether text contains a match anywhere.
func (p *Pattern) MatchString(text string) bool {
	return p.re.MatchString(text)
}

// String returns the pattern as the user wrote it.
func (p *Pattern) String() string {
	return p.Source
}

// CompileOne compiles a single case-insensitive pattern.
func CompileOne(pattern string) (*Pattern, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	return &Pattern{Source: pattern, re: re}, nil
}

// Compile compiles every pattern, silently dropping the ones that fail to
// compile. Order of the surviving patterns is preserved. Config validation
// reports the dropped ones.
func Compile(patterns []string) []*Pattern {
	out := make([]*Pattern, 0, len(patterns))
	for _, p := range patterns {
		compiled, err := CompileOne(p)
		if err != nil {
			continue
		}
		out = append(out, compiled)
	}
	return out
}

// TestAny reports whether text matches at least one pattern.
func TestAny(text string, patterns []*Pattern) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
