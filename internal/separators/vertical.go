// Package separators implements spec.md §4.3: vertical ruled-line detection
// via morphological opening, and whitespace-gutter detection via a
// horizontal distance transform.
package separators

import "github.com/deepteams/scribo/internal/raster"

// Vertical isolates long vertical runs of foreground pixels with a
// morphological opening (erosion followed by dilation) using a vertical
// line structuring element of length L (default 81, spec.md §4.3).
func Vertical(mask *raster.Binary, length int) *raster.Binary {
	eroded := erodeVertical(mask, length)
	return dilateVertical(eroded, length)
}

// erodeVertical sets a pixel true only if every pixel in a run of `length`
// centered vertically on it (clipped at image bounds, which counts as
// background) is also true.
func erodeVertical(mask *raster.Binary, length int) *raster.Binary {
	rows, cols := mask.Rows(), mask.Cols()
	out := raster.NewImage2D[bool](rows, cols)
	half := length / 2
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			ok := true
			for dr := -half; dr <= half && ok; dr++ {
				rr := r + dr
				if rr < 0 || rr >= rows || !mask.AtUnsafe(rr, c) {
					ok = false
				}
			}
			out.SetUnsafe(r, c, ok)
		}
	})
	return out
}

// dilateVertical sets a pixel true if any pixel in a run of `length`
// centered vertically on it is true.
func dilateVertical(mask *raster.Binary, length int) *raster.Binary {
	rows, cols := mask.Rows(), mask.Cols()
	out := raster.NewImage2D[bool](rows, cols)
	half := length / 2
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			hit := false
			for dr := -half; dr <= half && !hit; dr++ {
				rr := r + dr
				if rr >= 0 && rr < rows && mask.AtUnsafe(rr, c) {
					hit = true
				}
			}
			out.SetUnsafe(r, c, hit)
		}
	})
	return out
}
