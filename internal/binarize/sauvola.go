// Package binarize implements spec.md §4.1: single-scale and multi-scale
// Sauvola adaptive thresholding driven by an integral image, plus the fixed
// global-threshold "Convert" algorithm.
package binarize

import (
	"math"

	"github.com/deepteams/scribo/internal/raster"
)

// SauvolaParams bundles the formula's tunables, mirrored from options.Options
// so this package has no dependency on the root package.
type SauvolaParams struct {
	Window int // odd window side
	K      float64
	R      float64
}

// threshold evaluates the Sauvola formula t = m*(1 + K*(sigma/R - 1)) for the
// window centered at (r,c), using four-corner inclusion-exclusion on the
// integral image for O(1) evaluation (spec.md §4.1 "O(1) per-pixel
// evaluation"). Window corners are clipped to the image and n reduced
// accordingly.
func threshold(ii *raster.IntegralImage, r, c int, p SauvolaParams) float64 {
	half := p.Window / 2
	sum, sqsum, n := ii.WindowStats(r-half, c-half, r+half, c+half)
	if n <= 1 {
		// Degenerate window (spec.md §4.1 "Failure semantics"): every pixel
		// must read as background, so the threshold has to sit below every
		// possible intensity rather than above it.
		return math.Inf(-1)
	}
	nf := float64(n)
	mean := float64(sum) / nf
	// Numeric underflow guard (spec.md §4.1 "Failure semantics"): the
	// variance term can go slightly negative from floating point error on a
	// perfectly uniform window; clamp before the sqrt.
	variance := (float64(sqsum) - float64(sum)*float64(sum)/nf) / (nf - 1)
	if variance < 0 {
		variance = 0
	}
	sigma := math.Sqrt(variance)
	return mean * (1 + p.K*(sigma/p.R-1))
}

// Sauvola runs single-scale Sauvola binarization: true (foreground/ink) iff
// I(p) < t(p). A window with sigma=0 yields t == mean*(1-K), below the mean
// for any K > 0, so an exactly uniform image (every pixel == mean) emits an
// all-background mask, per spec.md's E1 and "Failure semantics".
func Sauvola(gray *raster.Gray8, p SauvolaParams) *raster.Binary {
	ii := raster.Build(gray)
	out := raster.NewImage2D[bool](gray.Rows(), gray.Cols())
	raster.ParallelRows(gray.Rows(), func(r int) {
		srcRow := gray.Row(r)
		for c := 0; c < gray.Cols(); c++ {
			t := threshold(ii, r, c, p)
			out.SetUnsafe(r, c, float64(srcRow[c]) < t)
		}
	})
	return out
}

// Convert applies a single fixed global threshold with no windowing: the
// simplest of the three BinarizationAlgo variants in spec.md §6, useful as a
// cheap baseline. SauvolaMs does not use it, even with MultiScaleDepth 1.
func Convert(gray *raster.Gray8, t uint8) *raster.Binary {
	out := raster.NewImage2D[bool](gray.Rows(), gray.Cols())
	raster.ParallelRows(gray.Rows(), func(r int) {
		srcRow := gray.Row(r)
		for c := 0; c < gray.Cols(); c++ {
			out.SetUnsafe(r, c, srcRow[c] < t)
		}
	})
	return out
}
