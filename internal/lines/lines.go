// Package lines implements spec.md §4.5: building LineInfo/LineSet geometry
// from linked component groups, the iterative merging pass, and pathology
// tagging.
package lines

import (
	"sort"

	"github.com/deepteams/scribo/internal/components"
	"github.com/deepteams/scribo/internal/linking"
)

// Tag classifies a LineInfo's standing after construction and merging.
type Tag int

const (
	// TagText is an ordinary, surviving text line.
	TagText Tag = iota
	// TagMerged marks a line absorbed into another during the merging pass.
	TagMerged
	// TagIgnored marks a singleton equivalence class: too little evidence
	// to estimate line geometry from (spec.md §4.5 "singletons become
	// Ignored").
	TagIgnored
	// TagPathological marks a line whose geometry fails the sanity checks
	// in spec.md §4.5 "Pathology tagging".
	TagPathological
)

// LineInfo is one text line's aggregated geometry (spec.md §3 "LineInfo").
// Invariant: Meanline <= Baseline and XHeight == Baseline - Meanline.
type LineInfo struct {
	ID        uint32
	Members   []uint32 // component ids, sorted by mass-center x.
	BBox      components.BBox
	Baseline  float64
	Meanline  float64
	XHeight   float64
	AHeight   float64
	DHeight   float64
	CharWidth float64
	CharSpace float64
	Tag       Tag
}

// LineSet is an ordered sequence of LineInfo; id 0 is reserved, matching
// the component/label id-space convention used throughout the pipeline.
type LineSet struct {
	set   *components.Set
	Lines []LineInfo
}

// Build groups components by their linking equivalence class and computes
// each surviving class's line geometry (spec.md §4.5 "Construction").
// Components tagged Separator or Ignored upstream never contribute: only
// TagObject members are grouped.
func Build(set *components.Set, groups *linking.Groups) *LineSet {
	byGroup := make(map[uint32][]uint32)
	var order []uint32
	for i := 1; i <= set.Len(); i++ {
		if set.Get(uint32(i)).Tag != components.TagObject {
			continue
		}
		g := groups.GroupID(uint32(i))
		if _, ok := byGroup[g]; !ok {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], uint32(i))
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	ls := &LineSet{set: set}
	var id uint32 = 1
	for _, g := range order {
		members := byGroup[g]
		sort.Slice(members, func(i, j int) bool {
			return set.Get(members[i]).MassCenterC < set.Get(members[j]).MassCenterC
		})
		line := LineInfo{ID: id, Members: members}
		if len(members) < 2 {
			line.Tag = TagIgnored
			line.BBox = set.Get(members[0]).BBox
			line.Baseline = float64(line.BBox.PMax.Row)
			line.Meanline = float64(line.BBox.PMin.Row)
			line.XHeight = line.Baseline - line.Meanline
			line.AHeight = line.XHeight
			line.DHeight = 0
			line.CharWidth = float64(line.BBox.Width())
		} else {
			computeGeometry(set, &line)
		}
		ls.Lines = append(ls.Lines, line)
		id++
	}
	return ls
}

// computeGeometry fills in BBox, Baseline, Meanline, XHeight, AHeight,
// DHeight, CharWidth, and CharSpace for a line whose Members is already
// sorted by mass-center x (spec.md §4.5 "Construction").
func computeGeometry(set *components.Set, line *LineInfo) {
	members := line.Members
	bbox := set.Get(members[0]).BBox
	for _, m := range members[1:] {
		bbox = bbox.Union(set.Get(m).BBox)
	}
	line.BBox = bbox

	line.Baseline = weightedMedianBottom(set, members)

	medianPixels := medianPixelCount(set, members)
	counts := make(map[int]int)
	for _, m := range members {
		c := set.Get(m)
		if float64(c.PixelCount) <= medianPixels {
			continue
		}
		h := int(line.Baseline) - c.BBox.PMin.Row
		counts[h]++
	}
	if len(counts) == 0 {
		// No member is above the median (e.g. equal-sized glyphs): every
		// member votes instead.
		for _, m := range members {
			counts[int(line.Baseline)-set.Get(m).BBox.PMin.Row]++
		}
	}
	dominant := modeOf(counts)
	line.Meanline = line.Baseline - float64(dominant)
	line.XHeight = line.Baseline - line.Meanline

	minTop, maxBottom := bbox.PMax.Row, bbox.PMin.Row
	for _, m := range members {
		c := set.Get(m)
		if c.BBox.PMin.Row < minTop {
			minTop = c.BBox.PMin.Row
		}
		if c.BBox.PMax.Row > maxBottom {
			maxBottom = c.BBox.PMax.Row
		}
	}
	line.AHeight = line.Baseline - float64(minTop)
	line.DHeight = float64(maxBottom) - line.Baseline

	var widthSum float64
	for _, m := range members {
		widthSum += float64(set.Get(m).BBox.Width())
	}
	line.CharWidth = widthSum / float64(len(members))

	if len(members) >= 2 {
		var gapSum float64
		for i := 1; i < len(members); i++ {
			prev, cur := set.Get(members[i-1]), set.Get(members[i])
			gap := float64(cur.BBox.PMin.Col - prev.BBox.PMax.Col - 1)
			if gap < 0 {
				gap = 0
			}
			gapSum += gap
		}
		line.CharSpace = gapSum / float64(len(members)-1)
	}
}

// weightedMedianBottom returns the median of member bbox-bottom rows,
// weighted by pixel count (spec.md §4.5 baseline definition).
func weightedMedianBottom(set *components.Set, members []uint32) float64 {
	type sample struct {
		row    int
		weight int
	}
	samples := make([]sample, len(members))
	total := 0
	for i, m := range members {
		c := set.Get(m)
		samples[i] = sample{row: c.BBox.PMax.Row, weight: c.PixelCount}
		total += c.PixelCount
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].row < samples[j].row })

	half := float64(total) / 2
	var cum int
	for _, s := range samples {
		cum += s.weight
		if float64(cum) >= half {
			return float64(s.row)
		}
	}
	if len(samples) == 0 {
		return 0
	}
	return float64(samples[len(samples)-1].row)
}

func medianPixelCount(set *components.Set, members []uint32) float64 {
	counts := make([]int, len(members))
	for i, m := range members {
		counts[i] = set.Get(m).PixelCount
	}
	sort.Ints(counts)
	n := len(counts)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(counts[n/2])
	}
	return float64(counts[n/2-1]+counts[n/2]) / 2
}

// modeOf returns the most frequent key; ties break toward the smallest
// key, since the dominant height spec.md describes is the x-height band
// (lowercase bodies), which is smaller than ascender-bearing glyphs'.
func modeOf(counts map[int]int) int {
	best, bestCount := 0, -1
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

// NonIgnored returns the lines not tagged Ignored, Merged, or Pathological.
func (ls *LineSet) NonIgnored() []LineInfo {
	var out []LineInfo
	for _, l := range ls.Lines {
		if l.Tag == TagText {
			out = append(out, l)
		}
	}
	return out
}

// BBox returns the bounding-box union of every non-ignored line, or the
// zero value if there are none.
func (ls *LineSet) BBox() components.BBox {
	lines := ls.NonIgnored()
	if len(lines) == 0 {
		return components.BBox{}
	}
	b := lines[0].BBox
	for _, l := range lines[1:] {
		b = b.Union(l.BBox)
	}
	return b
}
