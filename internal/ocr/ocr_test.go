package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/deepteams/scribo/internal/raster"
)

func TestCanonicalLanguageAcceptsDefaultTag(t *testing.T) {
	got, err := CanonicalLanguage("eng")
	if err != nil {
		t.Fatalf("CanonicalLanguage(eng) error: %v", err)
	}
	if got == "" {
		t.Errorf("CanonicalLanguage(eng) returned empty tag")
	}
}

func TestCanonicalLanguageRejectsGarbage(t *testing.T) {
	if _, err := CanonicalLanguage("not-a-real-language-tag!!"); err == nil {
		t.Errorf("expected an error for a malformed language tag")
	}
}

func TestTesseract3RoundTripsEnglish(t *testing.T) {
	canon, err := CanonicalLanguage("eng")
	if err != nil {
		t.Fatalf("CanonicalLanguage: %v", err)
	}
	iso3, err := Tesseract3(canon)
	if err != nil {
		t.Fatalf("Tesseract3: %v", err)
	}
	if iso3 != "eng" {
		t.Errorf("Tesseract3(%q) = %q, want \"eng\"", canon, iso3)
	}
}

func TestStubRecognizerReportsBackendUnavailable(t *testing.T) {
	r := NewStubRecognizer()
	defer r.Close()
	mask := raster.NewImage2D[bool](10, 10)
	_, err := r.Recognize(context.Background(), mask, "eng")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Recognize error = %v, want ErrBackendUnavailable", err)
	}
}

func TestStubRecognizerHonorsCancellation(t *testing.T) {
	r := NewStubRecognizer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mask := raster.NewImage2D[bool](4, 4)
	_, err := r.Recognize(ctx, mask, "eng")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recognize error = %v, want context.Canceled", err)
	}
}

func TestDefaultRecognizerIsUsable(t *testing.T) {
	r := New()
	defer r.Close()
	if r == nil {
		t.Fatal("New() returned nil")
	}
}
