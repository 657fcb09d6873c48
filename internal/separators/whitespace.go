package separators

import (
	"math"
	"sort"

	"github.com/deepteams/scribo/internal/raster"
)

// Whitespace identifies wide vertical strips of background between text
// columns (spec.md §4.3 "Whitespace separators"): a horizontal distance
// transform is run on the inverted binary mask, then a column is flagged as
// a separator wherever the local minimum distance across a tall vertical
// neighborhood exceeds a threshold proportional to the median text height.
//
// Whitespace extraction runs before connected-component extraction in the
// pipeline (spec.md §2's System Overview), so "text height" here is
// estimated directly from the mask's own vertical foreground run lengths
// rather than from component bboxes, which do not exist yet at this stage.
func Whitespace(mask *raster.Binary) *raster.Binary {
	rows, cols := mask.Rows(), mask.Cols()
	dist := horizontalDistanceTransform(mask)
	textHeight := medianVerticalRunLength(mask)
	if textHeight < 1 {
		textHeight = 1
	}
	threshold := float64(textHeight) * whitespaceHeightFactor

	out := raster.NewImage2D[bool](rows, cols)
	neighborhood := textHeight
	if neighborhood < 1 {
		neighborhood = 1
	}
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			minDist := math.MaxInt32
			for dr := -neighborhood / 2; dr <= neighborhood/2; dr++ {
				rr := r + dr
				if rr < 0 || rr >= rows {
					continue
				}
				d := dist.AtUnsafe(rr, c)
				if int(d) < minDist {
					minDist = int(d)
				}
			}
			out.SetUnsafe(r, c, float64(minDist) > threshold)
		}
	})
	return out
}

// whitespaceHeightFactor scales the median text height into the distance
// threshold a background strip must clear to count as a column gutter.
const whitespaceHeightFactor = 1.5

// noFGSeen marks "no foreground pixel encountered yet in this sweep
// direction" in the two linear passes below.
const noFGSeen = -1

// rowInfDistance is the distance reported for a row with no foreground
// pixels at all.
const rowInfDistance = uint32(1 << 30)

// horizontalDistanceTransform computes, for every pixel, the distance (in
// pixels) to the nearest foreground (ink) pixel on the same row, via two
// linear passes (left-to-right then right-to-left) — the standard 1-D
// distance transform, applied row-independently since only horizontal
// gutters are of interest.
func horizontalDistanceTransform(mask *raster.Binary) *raster.Image2D[uint32] {
	rows, cols := mask.Rows(), mask.Cols()
	out := raster.NewImage2D[uint32](rows, cols)
	raster.ParallelRows(rows, func(r int) {
		for c := 0; c < cols; c++ {
			out.SetUnsafe(r, c, rowInfDistance)
		}
		lastFG := noFGSeen
		for c := 0; c < cols; c++ {
			if mask.AtUnsafe(r, c) {
				lastFG = c
			}
			if lastFG != noFGSeen {
				out.SetUnsafe(r, c, uint32(c-lastFG))
			}
		}
		lastFG = noFGSeen
		for c := cols - 1; c >= 0; c-- {
			if mask.AtUnsafe(r, c) {
				lastFG = c
			}
			if lastFG != noFGSeen {
				d := uint32(lastFG - c)
				if d < out.AtUnsafe(r, c) {
					out.SetUnsafe(r, c, d)
				}
			}
		}
	})
	return out
}

// medianVerticalRunLength estimates typical text height as the median
// length of contiguous foreground runs along columns, restricted to runs of
// at least 2 pixels to exclude single-pixel noise.
func medianVerticalRunLength(mask *raster.Binary) int {
	rows, cols := mask.Rows(), mask.Cols()
	var runs []int
	for c := 0; c < cols; c++ {
		runStart := -1
		for r := 0; r <= rows; r++ {
			fg := r < rows && mask.At(r, c)
			if fg {
				if runStart < 0 {
					runStart = r
				}
			} else if runStart >= 0 {
				length := r - runStart
				if length >= 2 {
					runs = append(runs, length)
				}
				runStart = -1
			}
		}
	}
	if len(runs) == 0 {
		return 0
	}
	sort.Ints(runs)
	return runs[len(runs)/2]
}
