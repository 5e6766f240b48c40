// Package slug derives URL-safe identifiers from human labels.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
)

// Make converts a label to a slug: compatibility-decomposed, ASCII only,
// lowercase, punctuation dropped and runs of whitespace or hyphens collapsed
// to a single hyphen. It returns "" when nothing usable remains.
func Make(label string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(label) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	s := invalidChars.ReplaceAllString(b.String(), "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}
