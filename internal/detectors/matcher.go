// Package detectors implements the five-stage detector chain that turns a
// documents config and a source tree into a concrete list of operations:
// CopyDetector, PlantUMLDetector, OpenAPIDetector, DeleteDetector, and
// FilterDetector.
package detectors

import (
	"regexp"
	"strings"
)

// recursiveGlobToken is the escaped form of a "**/*" segment, as produced by
// regexp.QuoteMeta, matched and replaced as a single unit before any
// remaining single "*" is widened.
const recursiveGlobToken = `\*\*/\*`

// DefaultMatcher translates a document rule's source pattern into a regex:
// every literal character is escaped, a "**/*" glob segment is widened into
// ".*" (crossing directory boundaries), and any remaining "*" is widened
// into "[^/]*" (confined to a single path segment).
type DefaultMatcher struct {
	re *regexp.Regexp
}

// NewDefaultMatcher builds a matcher for pattern.
func NewDefaultMatcher(pattern string) *DefaultMatcher {
	escaped := regexp.QuoteMeta(pattern)
	translated := strings.ReplaceAll(escaped, recursiveGlobToken, ".*")
	translated = regexp.MustCompile(`\\\*`).ReplaceAllString(translated, "[^/]*")
	return &DefaultMatcher{re: regexp.MustCompile("^" + translated)}
}

// Match reports whether path matches the pattern this matcher was built from.
func (m *DefaultMatcher) Match(path string) bool {
	return m.re.MatchString(path)
}
