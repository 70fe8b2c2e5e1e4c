package inventory

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize canonicalizes a free-text ingredient name: trim surrounding
// whitespace, lowercase, then re-capitalize the first rune. "Chicken " and
// " chicken" both map to "Chicken" and therefore to the same ledger row.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
