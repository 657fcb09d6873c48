//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/deepteams/scribo/internal/raster"
)

// TesseractRecognizer wraps a gosseract.Client, the cgo binding onto a
// system Tesseract install. One client is reused across Recognize calls;
// gosseract.Client is not safe for concurrent use, so access is serialized.
type TesseractRecognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractRecognizer allocates a recognizer backed by a fresh
// gosseract.Client.
func NewTesseractRecognizer() *TesseractRecognizer {
	return &TesseractRecognizer{client: gosseract.NewClient()}
}

// Recognize feeds the clipped line image to Tesseract as a PNG and returns
// its text output. gosseract has no native context support, so cancellation
// is only honored between lines, not mid-recognition.
func (r *TesseractRecognizer) Recognize(ctx context.Context, img *raster.Binary, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	iso3, err := Tesseract3(lang)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	if err := r.client.SetLanguage(iso3); err != nil {
		return "", fmt.Errorf("ocr: set language %q: %w", iso3, err)
	}

	png, err := raster.EncodePNG(raster.BinaryToStdImage(img))
	if err != nil {
		return "", fmt.Errorf("ocr: encode line image: %w", err)
	}
	if err := r.client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("ocr: load line image: %w", err)
	}

	text, err := r.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: tesseract: %w", err)
	}
	return text, nil
}

// Close releases the underlying Tesseract client.
func (r *TesseractRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client.Close()
}
