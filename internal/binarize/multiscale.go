package binarize

import (
	"github.com/deepteams/scribo/internal/components"
	"github.com/deepteams/scribo/internal/raster"
)

// MultiScaleParams bundles SauvolaParams with the pyramid depth.
type MultiScaleParams struct {
	Sauvola SauvolaParams
	Depth   int // number of pyramid levels, >= 1
}

// pyramid builds Depth levels of a grayscale image, each a 2:1
// antialiased subsample of its parent. Level 0 is the full-resolution
// input.
func pyramid(gray *raster.Gray8, depth int) []*raster.Gray8 {
	levels := make([]*raster.Gray8, depth)
	levels[0] = gray
	for lvl := 1; lvl < depth; lvl++ {
		levels[lvl] = downsample2x(levels[lvl-1])
	}
	return levels
}

// downsample2x antialiases by averaging each 2x2 block (clamping at odd
// trailing rows/cols by duplicating the last row/col), halving both
// dimensions.
func downsample2x(src *raster.Gray8) *raster.Gray8 {
	rows, cols := (src.Rows()+1)/2, (src.Cols()+1)/2
	out := raster.NewImage2D[uint8](rows, cols)
	for r := 0; r < rows; r++ {
		r0, r1 := 2*r, 2*r+1
		if r1 >= src.Rows() {
			r1 = r0
		}
		for c := 0; c < cols; c++ {
			c0, c1 := 2*c, 2*c+1
			if c1 >= src.Cols() {
				c1 = c0
			}
			sum := int(src.At(r0, c0)) + int(src.At(r0, c1)) + int(src.At(r1, c0)) + int(src.At(r1, c1))
			out.SetUnsafe(r, c, uint8(sum/4))
		}
	}
	return out
}

// sauvolaAtLevel runs single-scale Sauvola on one pyramid level.
func sauvolaAtLevel(level *raster.Gray8, p SauvolaParams) *raster.Binary {
	return Sauvola(level, p)
}

// objectScaleMap labels a level's binarized mask and propagates each
// component's shorter bbox side onto every pixel it covers, per spec.md
// §4.1 "object-scale map". Background pixels get scale 0.
func objectScaleMap(mask *raster.Binary) *raster.Image2D[uint32] {
	labels, set := components.Extract(mask, components.Connectivity8)
	scaleMap := raster.NewImage2D[uint32](mask.Rows(), mask.Cols())
	for r := 0; r < labels.Rows(); r++ {
		for c := 0; c < labels.Cols(); c++ {
			id := labels.AtUnsafe(r, c)
			if id == 0 {
				continue
			}
			comp := set.Get(id)
			shortSide := comp.Width()
			if comp.Height() < shortSide {
				shortSide = comp.Height()
			}
			scaleMap.SetUnsafe(r, c, uint32(shortSide))
		}
	}
	return scaleMap
}

// SauvolaMs runs multi-scale Sauvola binarization (spec.md §4.1
// "Multi-scale extension"): a mask is computed at every pyramid level, an
// object-scale map is derived per level, and each full-resolution pixel
// adopts the decision from the level whose object-scale bucket is closest
// to that pixel's local stroke width (estimated from the finest level's
// scale map); ties are broken toward the finer (smaller-index) scale.
//
// This arbitration rule is inferred from Olena's component-scale maps
// rather than copied from a reference implementation (see SPEC_FULL.md
// §13, Open Question resolution for §9(b)).
func SauvolaMs(gray *raster.Gray8, p MultiScaleParams) *raster.Binary {
	depth := p.Depth
	if depth < 1 {
		depth = 1
	}
	levels := pyramid(gray, depth)
	masks := make([]*raster.Binary, depth)
	scaleMaps := make([]*raster.Image2D[uint32], depth)
	for lvl := 0; lvl < depth; lvl++ {
		masks[lvl] = sauvolaAtLevel(levels[lvl], p.Sauvola)
		scaleMaps[lvl] = objectScaleMap(masks[lvl])
	}
	if depth == 1 {
		return masks[0]
	}

	rows, cols := gray.Rows(), gray.Cols()
	out := raster.NewImage2D[bool](rows, cols)
	localStroke := scaleMaps[0] // finest level's own scale map estimates local stroke width.

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			targetScale := localStroke.AtUnsafe(r, c)
			bestLvl := 0
			bestDist := scaleDistance(targetScale, scaleAt(scaleMaps[0], r, c, 0))
			for lvl := 1; lvl < depth; lvl++ {
				lr, lc := r>>uint(lvl), c>>uint(lvl)
				dist := scaleDistance(targetScale, scaleAt(scaleMaps[lvl], lr, lc, lvl))
				if dist < bestDist {
					bestDist = dist
					bestLvl = lvl
				}
				// Ties broken toward the finer scale: strict '<' above
				// already keeps the first (finest) level encountered on a
				// tie, since later levels only replace on strict improvement.
			}
			lr, lc := r>>uint(bestLvl), c>>uint(bestLvl)
			out.SetUnsafe(r, c, maskAt(masks[bestLvl], lr, lc))
		}
	}
	return out
}

func scaleAt(m *raster.Image2D[uint32], r, c, lvl int) uint32 {
	if r >= m.Rows() {
		r = m.Rows() - 1
	}
	if c >= m.Cols() {
		c = m.Cols() - 1
	}
	if r < 0 || c < 0 {
		return 0
	}
	return m.At(r, c)
}

func maskAt(m *raster.Binary, r, c int) bool {
	if r >= m.Rows() {
		r = m.Rows() - 1
	}
	if c >= m.Cols() {
		c = m.Cols() - 1
	}
	if r < 0 || c < 0 {
		return false
	}
	return m.At(r, c)
}

func scaleDistance(target, candidate uint32) int64 {
	if target == 0 {
		// Background at the finest level: no local object to match scale
		// against, fall back to the finest (smallest-index) decision.
		return 0
	}
	d := int64(target) - int64(candidate)
	if d < 0 {
		d = -d
	}
	return d
}
