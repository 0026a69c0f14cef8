package slug

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Make derives a university slug from its display name: lowercase, with each
// run of whitespace replaced by a single underscore. Slugs are immutable once
// assigned.
func Make(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "_")
}
