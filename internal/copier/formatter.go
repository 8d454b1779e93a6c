package copier

import (
	"path/filepath"
	"strings"
)

// SimpleFormatter renders a path exactly as given.
type SimpleFormatter struct{}

func (SimpleFormatter) Format(path string) string { return path }

// RelativeFormatter renders a path relative to the first of its configured
// parents that actually contains it, falling back to the path unchanged.
type RelativeFormatter struct {
	parents []string
}

// NewRelativeFormatter builds a RelativeFormatter trying each of parents in
// order.
func NewRelativeFormatter(parents ...string) *RelativeFormatter {
	return &RelativeFormatter{parents: parents}
}

func (f *RelativeFormatter) Format(path string) string {
	for _, parent := range f.parents {
		if isSubpath(path, parent) {
			if rel, err := filepath.Rel(parent, path); err == nil {
				return rel
			}
		}
	}
	return path
}

// isSubpath reports whether path is nested under potentialParent, after
// resolving both to absolute, cleaned form.
func isSubpath(path, potentialParent string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absParent, err := filepath.Abs(potentialParent)
	if err != nil {
		return false
	}
	absParent = filepath.Clean(absParent)
	absPath = filepath.Clean(absPath)
	if absPath == absParent {
		return false
	}
	return strings.HasPrefix(absPath, absParent+string(filepath.Separator))
}
