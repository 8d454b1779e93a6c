package detectors

import "github.com/harrison/techdocs/internal/config"

// rule pairs one document config entry with its compiled matcher and
// excluders. The first rule whose matcher accepts a file (and whose
// excluders all reject it) wins.
type rule struct {
	entry     config.DocumentEntry
	matcher   *DefaultMatcher
	excluders []*DefaultMatcher
}

func newRule(entry config.DocumentEntry) rule {
	excluders := make([]*DefaultMatcher, 0, len(entry.Exclude))
	for _, excluded := range entry.Exclude {
		excluders = append(excluders, NewDefaultMatcher(excluded))
	}
	return rule{
		entry:     entry,
		matcher:   NewDefaultMatcher(entry.Source),
		excluders: excluders,
	}
}

func (r rule) match(file string) bool {
	if !r.matcher.Match(file) {
		return false
	}
	for _, excluder := range r.excluders {
		if excluder.Match(file) {
			return false
		}
	}
	return true
}

func rulesFor(documents []config.DocumentEntry) []rule {
	rules := make([]rule, 0, len(documents))
	for _, entry := range documents {
		rules = append(rules, newRule(entry))
	}
	return rules
}
