// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid   = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[\s_]+`)
	slugTrim      = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-safe handle from a title: lower-cased, punctuation
// stripped, whitespace and underscores collapsed to single hyphens.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSeparator.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}
