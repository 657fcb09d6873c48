package components

// SmallFilter marks components with pixel count below k as TagIgnored.
// Ids remain stable; nothing is deleted, matching spec.md §4.2's
// components_small(cs, k).
func SmallFilter(set *Set, k int) {
	for i := 1; i <= set.Len(); i++ {
		comp := &set.Components[i]
		if comp.Tag == TagSeparator {
			continue
		}
		if comp.PixelCount < k {
			comp.Tag = TagIgnored
		}
	}
}
