package ocr

import (
	"fmt"

	"golang.org/x/text/language"
)

// CanonicalLanguage validates an OCRLanguage option value and canonicalizes
// it into a BCP-47 tag (spec.md §6 "ocr_language"), e.g. "eng" -> "en".
// Concrete recognizers that want a backend-specific code (Tesseract's
// 3-letter traineddata names) derive it from the canonical tag themselves;
// see Tesseract3.
func CanonicalLanguage(tag string) (string, error) {
	if tag == "" {
		return "", fmt.Errorf("ocr: empty language tag")
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("ocr: invalid language tag %q: %w", tag, err)
	}
	return t.String(), nil
}

// Tesseract3 converts a canonical BCP-47 tag to the 3-letter ISO 639-2/3
// code Tesseract's traineddata files are named after (e.g. "en" -> "eng").
func Tesseract3(bcp47 string) (string, error) {
	t, err := language.Parse(bcp47)
	if err != nil {
		return "", fmt.Errorf("ocr: invalid language tag %q: %w", bcp47, err)
	}
	base, _ := t.Base()
	return base.ISO3(), nil
}
