// Package plausibility implements spec.md §4.6: the letter/whitespace ratio
// heuristic that turns OCR noise on non-text pages into an empty string.
package plausibility

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Filter retains text iff letter-or-number runes make up more than
// letterRatio of the string AND whitespace runes make up less than
// whitespaceRatio of it; otherwise it returns "". The input is first
// NFC-normalized so a combining-mark sequence counts as the single letter
// it renders as, not as two code points that could skew the ratio
// (spec.md §4.6; SPEC_FULL.md §11 "unicode/norm").
//
// Idempotent: Filter(Filter(t, ...), ...) == Filter(t, ...), since Filter's
// only two outputs are the NFC form of t (which normalizes to itself and
// has the same ratios) or "", and "" always has L=S=|T|=0,
// which this function treats as already failing the letter-ratio test (an
// empty string is never retained a second time because the first filtering
// already reduced it to "" — a no-text input stays no-text).
func Filter(text string, letterRatio, whitespaceRatio float64) string {
	normalized := norm.NFC.String(text)

	total := 0
	var letters, whitespace int
	for _, r := range normalized {
		total++
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			letters++
		case unicode.IsSpace(r):
			whitespace++
		}
	}
	if total == 0 {
		return ""
	}

	lr := float64(letters) / float64(total)
	sr := float64(whitespace) / float64(total)
	if lr > letterRatio && sr < whitespaceRatio {
		return normalized
	}
	return ""
}
