package validation

import (
	"regexp"
	"strings"
)

const maxSlugLength = 100

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^\w-]+`)
	validSlug     = regexp.MustCompile(`^[\w-]+$`)
)

// Slugify derives a URL slug from a display name: lowercase, whitespace
// collapsed to hyphens, non-word characters stripped, capped at 100
// characters.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}

// IsSlug reports whether s is a well-formed slug.
func IsSlug(s string) bool {
	return s != "" && len(s) <= maxSlugLength && validSlug.MatchString(s)
}
