package extract

import (
	"regexp"
	"strings"
)

var (
	reDateToken     = regexp.MustCompile(`\b20\d{2}[.\-/\s]?\d{1,2}[.\-/\s]?\d{1,2}\b|\d{4}년\s?\d{1,2}월\s?\d{1,2}일`)
	reCurrencyToken = regexp.MustCompile(`(?i)\b(krw|hkd|usd|jpy)\b|원|달러|[$£€]`)
	reAmountToken   = regexp.MustCompile(`\b\d{1,3}(,\d{3})+\b|\b\d{4,}\b`)
)

// OCRQuality estimates how plausible it is that the text came from a real
// claim-form scan, based on the artifacts such forms carry: date-shaped
// tokens, currency markers, and separator-grouped amounts. Purely
// informational; it feeds debug output, never scoring.
func OCRQuality(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.2 // base
	if reDateToken.MatchString(lower) {
		score += 0.2
	}
	if reCurrencyToken.MatchString(lower) {
		score += 0.15
	}
	if reAmountToken.MatchString(lower) {
		score += 0.15
	}
	if len(text) > 120 { // enough content to be a document
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
