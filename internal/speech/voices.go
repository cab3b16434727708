package speech

import "strings"

// SelectVoice picks the best voice for a language tag by a fixed fallback
// chain: exact language-region match, then same base language with the
// same region subtag, then any voice of the base language, then the first
// voice available. It never fails: with no match and no voices the zero
// Voice comes back with ok == false.
func SelectVoice(voices []Voice, languageTag string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	want := normalizeTag(languageTag)
	wantBase, wantRegion := splitTag(want)

	// Exact language-region match.
	for _, v := range voices {
		if normalizeTag(v.Language) == want && want != "" {
			return v, true
		}
	}

	// Same base language and region, tolerating extra subtags.
	if wantRegion != "" {
		for _, v := range voices {
			base, region := splitTag(normalizeTag(v.Language))
			if base == wantBase && region == wantRegion {
				return v, true
			}
		}
	}

	// Any voice of the same base language.
	if wantBase != "" {
		for _, v := range voices {
			base, _ := splitTag(normalizeTag(v.Language))
			if base == wantBase {
				return v, true
			}
		}
	}

	return voices[0], true
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

// splitTag returns the base language and region subtags of a normalized
// tag ("en-gb-oxendict" -> "en", "gb").
func splitTag(tag string) (base, region string) {
	parts := strings.Split(tag, "-")
	base = parts[0]
	if len(parts) > 1 {
		region = parts[1]
	}
	return base, region
}
