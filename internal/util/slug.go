package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns free text into a URL-safe slug: lowercase, diacritics
// stripped, runs outside [a-z0-9] collapsed to a single hyphen, edges trimmed.
func Slugify(s string) string {
	s = strings.ToLower(s)

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = slugNonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
