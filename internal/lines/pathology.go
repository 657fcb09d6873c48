package lines

import "github.com/deepteams/scribo/internal/components"

// TagPathologies marks lines whose geometry fails the sanity checks in
// spec.md §4.5 ("Pathology tagging"): x-height under 4px, bbox aspect
// ratio (width/height) under 1.5, or a bbox fully contained in another
// surviving line's bbox. Run after Merge, since containment and x-height
// are only meaningful for the final geometry.
func TagPathologies(ls *LineSet) {
	active := activeIndices(ls)
	for _, i := range active {
		l := &ls.Lines[i]
		if l.XHeight < 4 {
			l.Tag = TagPathological
			continue
		}
		h := l.BBox.Height()
		if h == 0 {
			continue
		}
		if float64(l.BBox.Width())/float64(h) < 1.5 {
			l.Tag = TagPathological
			continue
		}
	}

	active = activeIndices(ls)
	for _, i := range active {
		l := &ls.Lines[i]
		for _, j := range active {
			if i == j {
				continue
			}
			other := &ls.Lines[j]
			if containedIn(l.BBox, other.BBox) {
				l.Tag = TagPathological
				break
			}
		}
	}
}

func containedIn(inner, outer components.BBox) bool {
	return inner.PMin.Row >= outer.PMin.Row && inner.PMax.Row <= outer.PMax.Row &&
		inner.PMin.Col >= outer.PMin.Col && inner.PMax.Col <= outer.PMax.Col
}
