package linking

import (
	"sort"

	"github.com/deepteams/scribo/internal/components"
)

// rowBucketSize controls how finely the row-bucketed interval index
// partitions component vertical spans. Buckets this coarse are fine for
// page-scale inputs since component heights rarely exceed a few dozen
// pixels; this avoids the O(N^2) scan spec.md §4.4 calls out by letting a
// nearest-neighbor query skip buckets the source's own vertical span can't
// reach.
const rowBucketSize = 32

// index buckets component ids by the row buckets their bbox spans, and
// keeps a separate list of ids sorted by mass-center x within each bucket,
// so a right/left search only has to scan components that could plausibly
// satisfy the vertical-overlap requirement.
type index struct {
	set     *components.Set
	buckets map[int][]uint32 // bucket -> ids sorted by mass-center x
}

func buildIndex(set *components.Set) *index {
	idx := &index{set: set, buckets: make(map[int][]uint32)}
	for i := 1; i <= set.Len(); i++ {
		comp := set.Get(uint32(i))
		if comp.Tag != components.TagObject {
			continue
		}
		b0 := comp.BBox.PMin.Row / rowBucketSize
		b1 := comp.BBox.PMax.Row / rowBucketSize
		for b := b0; b <= b1; b++ {
			idx.buckets[b] = append(idx.buckets[b], comp.ID)
		}
	}
	for b, ids := range idx.buckets {
		sort.Slice(ids, func(i, j int) bool {
			return set.Get(ids[i]).MassCenterC < set.Get(ids[j]).MassCenterC
		})
		idx.buckets[b] = ids
	}
	return idx
}

// candidatesOverlappingRows returns the distinct, x-sorted ids of every
// non-ignored, non-separator component whose bbox falls in a row bucket
// overlapping [rowMin,rowMax].
func (idx *index) candidatesOverlappingRows(rowMin, rowMax int) []uint32 {
	b0 := rowMin / rowBucketSize
	b1 := rowMax / rowBucketSize
	seen := make(map[uint32]bool)
	var out []uint32
	for b := b0; b <= b1; b++ {
		for _, id := range idx.buckets[b] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return idx.set.Get(out[i]).MassCenterC < idx.set.Get(out[j]).MassCenterC
	})
	return out
}
