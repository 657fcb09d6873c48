package ocr

import (
	"context"
	"fmt"

	"github.com/deepteams/scribo/internal/raster"
)

// ErrBackendUnavailable is returned by StubRecognizer.Recognize, surfaced
// by the pipeline as KindOCRBackendError (spec.md §6 exit code 4): the
// module was built without the gosseract tag, so no real recognizer is
// wired in.
var ErrBackendUnavailable = fmt.Errorf("ocr: no recognizer backend compiled in (build with -tags gosseract)")

// StubRecognizer is the tag-free default: it keeps the module importable
// and testable without a system Tesseract install. It never produces text.
type StubRecognizer struct{}

// NewStubRecognizer returns a StubRecognizer.
func NewStubRecognizer() *StubRecognizer { return &StubRecognizer{} }

func (StubRecognizer) Recognize(ctx context.Context, img *raster.Binary, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", ErrBackendUnavailable
}

func (StubRecognizer) Close() error { return nil }
