package linking

import "github.com/deepteams/scribo/internal/components"

// Links is an array indexed by component id whose value is either another
// component id or the same id ("self", meaning no neighbor), tracked
// independently for each direction (spec.md §3 "ObjectLink").
type Links struct {
	Link []uint32 // Link[0] == 0 always.
}

func newLinks(n int) Links {
	l := Links{Link: make([]uint32, n+1)}
	for i := range l.Link {
		l.Link[i] = uint32(i)
	}
	return l
}

// Right builds the right-direction link array: for each non-ignored,
// non-separator component s, the nearest component t to its right whose
// bbox intersects a horizontal ray cast from s's mass center, whose edge-to-
// edge horizontal gap from s lies in (0, dmax(s)], and whose vertical span
// overlaps s's (spec.md §4.4 "Right link"; dmax is GLOSSARY-defined as an
// "inter-component" distance, so the window is measured bbox-edge to
// bbox-edge rather than mass-center to mass-center — consistent with E3's
// "gap 10px < dmax" against a dmax computed from bbox width/height, which a
// mass-center-to-mass-center measurement would not satisfy).
func Right(set *components.Set, alpha float64) Links {
	return buildDirectional(set, alpha, true)
}

// Left builds the left-direction link array, symmetric to Right.
func Left(set *components.Set, alpha float64) Links {
	return buildDirectional(set, alpha, false)
}

func buildDirectional(set *components.Set, alpha float64, rightward bool) Links {
	idx := buildIndex(set)
	links := newLinks(set.Len())

	for i := 1; i <= set.Len(); i++ {
		s := set.Get(uint32(i))
		if s.Tag != components.TagObject {
			continue
		}
		dmax := DMax(s, alpha)
		rayRow := int(s.MassCenterR + 0.5)

		candidates := idx.candidatesOverlappingRows(s.BBox.PMin.Row, s.BBox.PMax.Row)
		var best uint32
		bestDist := dmax + 1 // sentinel: nothing found yet.

		for _, cid := range candidates {
			if cid == s.ID {
				continue
			}
			t := set.Get(cid)
			if t.Tag != components.TagObject {
				continue
			}
			if rayRow < t.BBox.PMin.Row || rayRow > t.BBox.PMax.Row {
				continue // ray does not intersect t's bbox.
			}
			if t.BBox.PMax.Row < s.BBox.PMin.Row || t.BBox.PMin.Row > s.BBox.PMax.Row {
				continue // no vertical span overlap.
			}
			var gap float64
			if rightward {
				gap = float64(t.BBox.PMin.Col - s.BBox.PMax.Col - 1)
			} else {
				gap = float64(s.BBox.PMin.Col - t.BBox.PMax.Col - 1)
			}
			if gap <= 0 || gap > dmax {
				continue
			}
			if gap < bestDist {
				bestDist = gap
				best = cid
			}
		}

		if best != 0 {
			links.Link[s.ID] = best
		}
	}
	return links
}
