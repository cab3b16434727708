package builder

import (
	"strings"
)

// Leading phrases stripped when a field's value must continue a carrier
// sentence ("I am a teacher" -> "a teacher"). Longest first so "I'm" wins
// over "I".
var pronounPrefixes = []string{"i am ", "i'm ", "i "}

// Goal-intent lead-ins normalized away so the value becomes a bare
// "to + verb" fragment ("I want to travel" -> "to travel").
var goalPrefixes = []string{
	"i want to ",
	"i would like to ",
	"i'd like to ",
	"my goal is to ",
	"i hope to ",
}

// clean applies the field's normalization toggles in a fixed order:
// trim, strip trailing terminator, strip leading pronoun phrase, strip
// goal-intent phrase. Each rule is independent; the input is untouched.
func clean(raw string, spec FieldSpec) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if spec.StripTerminator {
		s = strings.TrimSpace(strings.TrimRight(s, ".!?"))
	}
	if spec.StripPronoun {
		s = stripPrefix(s, pronounPrefixes)
	}
	if spec.StripGoal {
		s = stripPrefix(s, goalPrefixes)
		if s != "" && !hasFoldedPrefix(s, "to ") && s != "to" {
			s = "to " + s
		}
		s = lowerFirst(s)
	}
	return s
}

func stripPrefix(s string, prefixes []string) string {
	for _, p := range prefixes {
		if hasFoldedPrefix(s, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

func hasFoldedPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
