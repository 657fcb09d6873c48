// Package ocr defines the recognizer boundary the pipeline calls after
// reconstructing text lines (spec.md §6 "OCR boundary"): a bbox-clipped
// binary image and a language tag in, a UTF-8 string out. The core never
// assumes a particular backend; concrete recognizers live behind this
// interface so the rest of the module stays free of OCR dependencies
// except where a build tag opts one in.
package ocr

import (
	"context"

	"github.com/deepteams/scribo/internal/raster"
)

// Recognizer turns one text line's binary raster into UTF-8 text.
type Recognizer interface {
	// Recognize receives a line's bbox-clipped binary image (foreground =
	// ink) and a canonicalized language tag, and returns the text the
	// backend read from it. The context may carry a deadline or
	// cancellation that implementations forwarding to subprocess or cgo
	// calls should honor where the underlying library allows it.
	Recognize(ctx context.Context, img *raster.Binary, lang string) (string, error)

	// Close releases any backend resources (subprocess handles, native
	// library state). Safe to call on a zero-value or already-closed
	// Recognizer.
	Close() error
}

// Clip extracts the sub-image of mask covering bbox, for handing a single
// text line's pixels to a Recognizer without copying the whole page.
func Clip(mask *raster.Binary, r0, c0, r1, c1 int) *raster.Binary {
	h, w := r1-r0+1, c1-c0+1
	out := raster.NewImage2D[bool](h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if mask.In(r0+r, c0+c) {
				out.SetUnsafe(r, c, mask.AtUnsafe(r0+r, c0+c))
			}
		}
	}
	return out
}
