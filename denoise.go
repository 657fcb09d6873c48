package scribo

import "github.com/deepteams/scribo/internal/raster"

// denoise removes isolated foreground pixels from a binary mask: a
// foreground pixel survives only if at least one of its 8 neighbors is
// also foreground, otherwise it is almost certainly scan speckle rather
// than ink (spec.md §6 "enable_denoising", applied both pre- and
// post-binarization; this implements the post-binarization pass that
// produces the "denoised" pipeline stage and its denoised.pbm artifact).
func denoise(mask *raster.Binary) *raster.Binary {
	rows, cols := mask.Rows(), mask.Cols()
	out := raster.NewImage2D[bool](rows, cols)
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			if !mask.AtUnsafe(r, c) {
				continue
			}
			out.SetUnsafe(r, c, hasForegroundNeighbor(mask, r, c, rows, cols))
		}
	})
	return out
}

func hasForegroundNeighbor(mask *raster.Binary, r, c, rows, cols int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			rr, cc := r+dr, c+dc
			if rr < 0 || rr >= rows || cc < 0 || cc >= cols {
				continue
			}
			if mask.AtUnsafe(rr, cc) {
				return true
			}
		}
	}
	return false
}

// denoiseGray applies a 3x3 median filter to a grayscale image, the
// pre-binarization denoising pass (spec.md §6 "enable_denoising").
func denoiseGray(gray *raster.Gray8) *raster.Gray8 {
	rows, cols := gray.Rows(), gray.Cols()
	out := raster.NewImage2D[uint8](rows, cols)
	raster.ParallelRows(rows, func(r int) {
		var window [9]uint8
		for c := 0; c < cols; c++ {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					rr, cc := r+dr, c+dc
					if rr < 0 || rr >= rows || cc < 0 || cc >= cols {
						rr, cc = r, c
					}
					window[n] = gray.AtUnsafe(rr, cc)
					n++
				}
			}
			out.SetUnsafe(r, c, median9(window))
		}
	})
	return out
}

func median9(w [9]uint8) uint8 {
	sorted := w
	for i := 1; i < len(sorted); i++ {
		v := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > v {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = v
	}
	return sorted[4]
}
