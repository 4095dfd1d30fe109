package site

import (
	"fmt"
	"regexp"
	"strings"
)

// Glob matches slash-separated relative paths. Supported syntax: "*" (within a
// segment), "**" (any number of segments), "?", and one extglob negation
// "!(a|b)" matching any segment text except the listed alternatives.
type Glob struct {
	pattern  string
	re       *regexp.Regexp
	excluded *regexp.Regexp
}

// CompileGlob parses pattern.
func CompileGlob(pattern string) (*Glob, error) {
	var b strings.Builder
	var excluded *regexp.Regexp
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '*' && strings.HasPrefix(pattern[i:], "**/"):
			b.WriteString("(?:.*/)?")
			i += 2
		case c == '*' && strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		case c == '!' && strings.HasPrefix(pattern[i:], "!("):
			end := strings.IndexByte(pattern[i:], ')')
			if end < 0 {
				return nil, fmt.Errorf("unterminated !( in glob %q", pattern)
			}
			if excluded != nil {
				return nil, fmt.Errorf("only one !( group allowed in glob %q", pattern)
			}
			alts := strings.Split(pattern[i+2:i+end], "|")
			for j, a := range alts {
				alts[j] = regexp.QuoteMeta(a)
			}
			excluded = regexp.MustCompile("^(?:" + strings.Join(alts, "|") + ")$")
			b.WriteString("(?P<neg>[^/]*)")
			i += end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return &Glob{pattern: pattern, re: re, excluded: excluded}, nil
}

// Match reports whether the slash-separated relative path matches.
func (g *Glob) Match(rel string) bool {
	m := g.re.FindStringSubmatch(rel)
	if m == nil {
		return false
	}
	if g.excluded != nil {
		if g.excluded.MatchString(m[g.re.SubexpIndex("neg")]) {
			return false
		}
	}
	return true
}

// String returns the source pattern.
func (g *Glob) String() string { return g.pattern }

// IsGlob reports whether pattern contains glob syntax.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?") || strings.Contains(pattern, "!(")
}

func compileGlobs(patterns []string) ([]*Glob, error) {
	globs := make([]*Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := CompileGlob(p)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []*Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
