// Package exclude matches repository-relative paths against glob-style
// exclusion patterns, e.g. test sources that must never be annotated.
package exclude

import (
	"path/filepath"
	"regexp"
	"strings"
)

type rule struct {
	pattern  string
	negated  bool
	anchored bool
}

// Matcher applies exclusion patterns with "last rule wins" behavior, so a
// later negated pattern can carve out an exception.
type Matcher struct {
	rules []rule
}

// NewMatcher builds a matcher from config-provided patterns. Patterns use
// glob syntax: `*` matches within a path segment, `**` crosses segments,
// a leading `/` anchors to the repository root, a leading `!` negates.
func NewMatcher(patterns []string) *Matcher {
	rules := make([]rule, 0, len(patterns))
	for _, line := range patterns {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}
	return &Matcher{rules: rules}
}

// Match reports whether relPath is excluded.
func (m *Matcher) Match(relPath string) bool {
	relPath = normalizePath(relPath)
	excluded := false
	for _, r := range m.rules {
		if ruleMatches(r, relPath) {
			excluded = !r.negated
		}
	}
	return excluded
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	line = normalizePath(strings.TrimSuffix(line, "/"))
	if line == "" {
		return rule{}, false
	}
	parsed.pattern = line
	return parsed, true
}

func ruleMatches(r rule, relPath string) bool {
	if r.anchored {
		return matchPattern(r.pattern, relPath)
	}

	if strings.Contains(r.pattern, "/") {
		if matchPattern(r.pattern, relPath) {
			return true
		}
		// Unanchored multi-segment patterns may match any path suffix.
		parts := strings.Split(relPath, "/")
		for i := 1; i < len(parts); i++ {
			if matchPattern(r.pattern, strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}

	if matchPattern(r.pattern, filepath.Base(relPath)) {
		return true
	}
	for _, segment := range strings.Split(relPath, "/") {
		if matchPattern(r.pattern, segment) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, value string) bool {
	ok, err := regexp.MatchString("^"+globToRegex(pattern)+"$", value)
	return err == nil && ok
}

func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]

		if ch == '*' {
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(".*")
				i++
				continue
			}
			b.WriteString("[^/]*")
			continue
		}
		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}
		if strings.ContainsRune(`.+()|[]{}^$\\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
