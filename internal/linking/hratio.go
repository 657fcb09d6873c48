package linking

import "github.com/deepteams/scribo/internal/components"

// HeightRatioFilter rejects a surviving link s -> t (turning it back into a
// self-link) when max(h_s, h_t) / min(h_s, h_t) exceeds threshold
// (spec.md §4.4 "Height-ratio filter", default threshold 2.5).
func HeightRatioFilter(set *components.Set, links Links, threshold float64) Links {
	out := newLinks(len(links.Link) - 1)
	for s := 1; s < len(links.Link); s++ {
		t := links.Link[s]
		if t == uint32(s) {
			continue
		}
		hs := float64(set.Get(uint32(s)).Height())
		ht := float64(set.Get(t).Height())
		if hs == 0 || ht == 0 {
			continue
		}
		ratio := hs / ht
		if ratio < 1 {
			ratio = 1 / ratio
		}
		if ratio > threshold {
			continue // rejected: link stays self.
		}
		out.Link[s] = t
	}
	return out
}
