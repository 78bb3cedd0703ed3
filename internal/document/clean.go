package document

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markupPattern matches the shortest "<...>" span.
// This is a best-effort tag scrubber, not an HTML parser: entities are left
// as-is and an unmatched "<" is kept.
var markupPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup deletes every "<...>" span from s.
func StripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}

// CleanName converts a title into a file-system safe name.
//
// The title is decomposed (NFD), nonspacing marks (category Mn) are dropped,
// every code point outside [A-Za-z0-9_] becomes "_" and the result is
// lowercased. "Café É Ótimo!" becomes "cafe_e_otimo_".
//
// CleanName is defined for every string, including invalid UTF-8, and is
// idempotent.
func CleanName(title string) string {
	// transform.Chain keeps state, so build it per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, title)
	if err != nil {
		decomposed = title
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if isNameRune(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return strings.ToLower(b.String())
}

// isNameRune reports whether r is in [A-Za-z0-9_].
func isNameRune(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}
