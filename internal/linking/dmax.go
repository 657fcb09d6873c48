// Package linking implements spec.md §4.4: the left/right nearest-neighbor
// link builder, bidirectional validation, the height-ratio filter, and
// union-find-based grouping into line candidates.
package linking

import "github.com/deepteams/scribo/internal/components"

// DMax returns the maximum horizontal search distance for component c,
// alpha * max(width, height), symmetric in both directions (spec.md §4.4
// "dmax policy").
func DMax(c *components.Component, alpha float64) float64 {
	w, h := float64(c.Width()), float64(c.Height())
	longest := w
	if h > longest {
		longest = h
	}
	return alpha * longest
}
