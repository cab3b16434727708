package engine

import (
	"strings"
	"unicode"
)

// normalizeAnswer applies the one text-matching policy used for every
// free-text comparison: trim, case-fold, collapse runs of whitespace.
// The source pages disagreed with each other here; the engine does not.
func normalizeAnswer(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
