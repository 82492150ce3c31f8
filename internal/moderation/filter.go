// Package moderation classifies candidate usernames as allowed or
// disallowed.
package moderation

import (
	"strings"

	goaway "github.com/TwiN/go-away"
)

// Filter rejects usernames containing general profanity or any term from a
// configured blocklist. Blocklist matching is a case-insensitive substring
// match, so "JosephStalin99" is rejected by the "stalin" entry.
type Filter struct {
	detector  *goaway.ProfanityDetector
	blocklist []string
}

// New builds a Filter over the given blocklist terms. Terms are lowercased
// once at construction.
func New(blocklist []string) *Filter {
	terms := make([]string, len(blocklist))
	for i, t := range blocklist {
		terms[i] = strings.ToLower(t)
	}
	return &Filter{
		detector:  goaway.NewProfanityDetector(),
		blocklist: terms,
	}
}

// IsProfane reports whether the candidate username is disallowed.
func (f *Filter) IsProfane(candidate string) bool {
	lowered := strings.ToLower(candidate)
	for _, term := range f.blocklist {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return f.detector.IsProfane(candidate)
}
