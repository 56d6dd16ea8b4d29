package extract

import (
	"regexp"
	"strings"
)

var (
	// Keep word characters, Korean syllables, whitespace and basic
	// punctuation; everything else is scanner noise.
	reSpecials = regexp.MustCompile(`[^\w\s가-힣.,:-]`)
	// Isolated 1-2 letter uppercase runs are almost always OCR artifacts
	// (stray form-grid letters, checkbox remnants).
	reIsolatedCaps = regexp.MustCompile(`\b[A-Z]{1,2}\b`)
	// Standalone 1-2 digit tokens. Digits glued to punctuation (thousands
	// separators, dates) must survive, so this is matched per token.
	reShortNumber = regexp.MustCompile(`^\d{1,2}$`)
)

// Normalize cleans raw OCR text into a single-line-friendly form: noise
// characters become spaces, isolated short uppercase/digit tokens are
// dropped, and whitespace is collapsed. Always returns a string, possibly
// empty for garbage input.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := reSpecials.ReplaceAllString(raw, " ")
	s = reIsolatedCaps.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, tok := range fields {
		if reShortNumber.MatchString(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
