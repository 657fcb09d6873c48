package scribo

import (
	"math"

	"github.com/deepteams/scribo/internal/raster"
)

// subsampleFactor picks the antialiased downscale factor EnableSubsample
// documents: 2x past 2500px on the longest side, 3x past 5000px.
func subsampleFactor(rows, cols int) int {
	longest := rows
	if cols > longest {
		longest = cols
	}
	switch {
	case longest > 5000:
		return 3
	case longest > 2500:
		return 2
	default:
		return 1
	}
}

// subsample box-filters img down by factor, averaging each factor x factor
// block into one output pixel. factor <= 1 returns img unchanged.
func subsample(img *raster.RGB8, factor int) *raster.RGB8 {
	if factor <= 1 {
		return img
	}
	rows, cols := img.Rows()/factor, img.Cols()/factor
	out := raster.NewImage2D[raster.RGB](rows, cols)
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			var sumR, sumG, sumB, n int
			for dr := 0; dr < factor; dr++ {
				for dc := 0; dc < factor; dc++ {
					rr, cc := r*factor+dr, c*factor+dc
					if !img.In(rr, cc) {
						continue
					}
					px := img.AtUnsafe(rr, cc)
					sumR += int(px.R)
					sumG += int(px.G)
					sumB += int(px.B)
					n++
				}
			}
			if n == 0 {
				continue
			}
			out.SetUnsafe(r, c, raster.RGB{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n)})
		}
	})
	return out
}

// resolveLambda returns the foreground-extraction area parameter: p.Lambda
// if set, otherwise the auto formula 1.2*(rows+cols) (Options.Lambda's
// documented default).
func resolveLambda(lambda float64, rows, cols int) float64 {
	if lambda > 0 {
		return lambda
	}
	return 1.2 * float64(rows+cols)
}

// splitForeground estimates a local background (paper is brighter than
// ink, so the background at p is approximately the brightest value in a
// window around p) and flattens any pixel that doesn't deviate from that
// estimate by more than a fixed margin, the "Foreground Extraction" stage
// (EnableFgExtraction). lambda bounds the area of the largest foreground
// object the window is expected to cover; the window side is its square
// root, clamped to an odd number >= 3.
func splitForeground(gray *raster.Gray8, lambda float64) *raster.Gray8 {
	rows, cols := gray.Rows(), gray.Cols()
	window := int(math.Sqrt(lambda))
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	const deviationMargin = 10
	fg := raster.NewImage2D[uint8](rows, cols)
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			var bg uint8
			for dr := -half; dr <= half; dr++ {
				rr := r + dr
				if rr < 0 || rr >= rows {
					continue
				}
				for dc := -half; dc <= half; dc++ {
					cc := c + dc
					if cc < 0 || cc >= cols {
						continue
					}
					if v := gray.AtUnsafe(rr, cc); v > bg {
						bg = v
					}
				}
			}
			v := gray.AtUnsafe(r, c)
			if int(bg)-int(v) > deviationMargin {
				fg.SetUnsafe(r, c, v)
			} else {
				fg.SetUnsafe(r, c, bg)
			}
		}
	})
	return fg
}

// deskew estimates the page's skew angle by maximizing the variance of the
// ink-count projection profile over a +-5 degree sweep, then rotates the
// image by the negative of that angle so text runs horizontal (the
// "Deskew" preprocessing stage, EnableDeskew).
func deskew(gray *raster.Gray8) *raster.Gray8 {
	angle := estimateSkewAngle(gray)
	if angle == 0 {
		return gray
	}
	return rotateGray(gray, -angle)
}

func estimateSkewAngle(gray *raster.Gray8) float64 {
	const maxDegrees = 5.0
	const stepDegrees = 0.5
	bestDeg, bestVariance := 0.0, -1.0
	for deg := -maxDegrees; deg <= maxDegrees; deg += stepDegrees {
		v := projectionVariance(gray, deg*math.Pi/180)
		if v > bestVariance {
			bestVariance = v
			bestDeg = deg
		}
	}
	return bestDeg * math.Pi / 180
}

// projectionVariance buckets ink pixels by their position along the
// candidate baseline direction and returns the variance of the per-bucket
// counts: a well-aligned skew estimate packs ink into fewer, denser rows,
// which maximizes this variance at the true skew angle.
func projectionVariance(gray *raster.Gray8, angle float64) float64 {
	rows, cols := gray.Rows(), gray.Cols()
	sin, cos := math.Sin(angle), math.Cos(angle)
	const inkThreshold = 128
	counts := make(map[int]int)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if gray.AtUnsafe(r, c) >= inkThreshold {
				continue
			}
			bucket := int(float64(r)*cos - float64(c)*sin)
			counts[bucket]++
		}
	}
	if len(counts) == 0 {
		return 0
	}
	var mean, n float64
	for _, v := range counts {
		mean += float64(v)
		n++
	}
	mean /= n
	var variance float64
	for _, v := range counts {
		d := float64(v) - mean
		variance += d * d
	}
	return variance / n
}

// rotateGray rotates gray by angle radians around its center, nearest-
// neighbor sampled, filling pixels rotated in from outside the source
// bounds with white (background).
func rotateGray(gray *raster.Gray8, angle float64) *raster.Gray8 {
	rows, cols := gray.Rows(), gray.Cols()
	out := raster.NewImage2D[uint8](rows, cols)
	cr, cc := float64(rows-1)/2, float64(cols-1)/2
	sin, cos := math.Sin(angle), math.Cos(angle)
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			dr, dc := float64(r)-cr, float64(c)-cc
			srcR := int(math.Round(dr*cos-dc*sin+cr))
			srcC := int(math.Round(dr*sin+dc*cos+cc))
			if srcR < 0 || srcR >= rows || srcC < 0 || srcC >= cols {
				out.SetUnsafe(r, c, 0xff)
				continue
			}
			out.SetUnsafe(r, c, gray.AtUnsafe(srcR, srcC))
		}
	})
	return out
}
