package service

import (
	"strings"
	"unicode"
)

// Slugify derives the path slug of a section or subsection from its English title.
// Letters, digits, underscores and hyphens survive; each run of spaces and hyphens
// becomes one hyphen. Edge hyphens are kept, so "National-" slugs to "national-".
func Slugify(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	var b strings.Builder
	b.Grow(len(value))
	inRun := false
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			inRun = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			if !inRun {
				b.WriteByte('-')
			}
			inRun = true
		}
	}
	return b.String()
}

// SlugifyName derives a stored slug for tags, authors and pages; edge hyphens
// and underscores are dropped.
func SlugifyName(value string) string {
	return strings.Trim(Slugify(value), "-_")
}
