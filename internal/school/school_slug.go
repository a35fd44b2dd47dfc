package school

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	slugMinLen = 2
	slugMaxLen = 63 // DNS label limit, slugs become subdomains
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// NormalizeSlug lowercases and trims a candidate slug.
func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateSlug checks a normalized slug against subdomain rules.
func ValidateSlug(slug string) error {
	if len(slug) < slugMinLen {
		return fmt.Errorf("slug must be at least %d characters", slugMinLen)
	}
	if len(slug) > slugMaxLen {
		return fmt.Errorf("slug must be at most %d characters", slugMaxLen)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and hyphens, and may not start or end with a hyphen")
	}
	return nil
}
