package scribo

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/deepteams/scribo/internal/raster"
)

// ExtractText decodes imageBytes, runs the full extraction pipeline with
// opts, and returns the recognized, plausibility-filtered text. An empty
// string with a nil error means the page was decoded and processed fine
// but no plausible text was found on it (spec.md §4.6/§7). A page whose
// binarization has no foreground pixels returns an empty string with a
// non-fatal *Error of KindDegenerateOutput; any other non-nil error means
// the input itself, or a pipeline stage, failed.
func ExtractText(ctx context.Context, imageBytes []byte, opts Options) (string, error) {
	if len(imageBytes) == 0 {
		return "", newError(KindInvalidImage, "", errZeroSizedImage)
	}
	if err := opts.Validate(); err != nil {
		return "", newError(KindInvalidImage, "", err)
	}

	src, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", newError(KindInvalidImage, "", fmt.Errorf("%w: %v", errDecodeFailed, err))
	}
	if !isRGBOrGray(src) {
		return "", newError(KindUnsupportedFormat, "", errNotRGBOrGray)
	}

	img := raster.FromStdImage(src)
	p := NewPipeline(opts)
	return p.Run(ctx, img)
}

// isRGBOrGray reports whether src's concrete pixel representation is one
// of the RGB or grayscale varieties the rest of the pipeline assumes;
// image/jpeg's CMYK (Adobe four-color) decode is the one common format
// registered here that is neither.
func isRGBOrGray(src image.Image) bool {
	switch src.(type) {
	case *image.CMYK:
		return false
	default:
		return true
	}
}
