package lines

import (
	"math"
	"sort"

	"github.com/deepteams/scribo/internal/components"
)

// MergeConfig bundles the merge pass's thresholds (spec.md §4.5), mirrored
// from options.Options so this package has no dependency on the root
// package.
type MergeConfig struct {
	// BaselineFactor bounds how far two baselines may differ, as a
	// multiple of the smaller line's x-height.
	BaselineFactor float64
	// XHeightRatioMin and XHeightRatioMax bound the larger/smaller
	// x-height ratio eligible lines must fall within.
	XHeightRatioMin float64
	XHeightRatioMax float64
	// GapFactor bounds the horizontal gap between lines, as a multiple of
	// the larger line's char width.
	GapFactor float64
}

// Merge iteratively unifies horizontally adjacent lines per spec.md §4.5
// ("text::merging"): baselines within cfg.BaselineFactor*min(x_height),
// x-height ratio in [cfg.XHeightRatioMin, cfg.XHeightRatioMax], and
// horizontal gap no larger than cfg.GapFactor*max(char_width). The loser
// of each merge is tagged Merged and the winner's geometry is recomputed
// from the combined member set. Runs to a fixed point: a full pass with no
// successful merge ends the loop.
func Merge(ls *LineSet, cfg MergeConfig) {
	for {
		changed := false
		active := activeIndices(ls)
		sort.Slice(active, func(i, j int) bool {
			return ls.Lines[active[i]].BBox.PMin.Col < ls.Lines[active[j]].BBox.PMin.Col
		})
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				ai, bi := active[i], active[j]
				a, b := &ls.Lines[ai], &ls.Lines[bi]
				if a.Tag != TagText || b.Tag != TagText {
					continue
				}
				if !eligibleMerge(a, b, cfg) {
					continue
				}
				mergeInto(ls.set, a, b)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func eligibleMerge(a, b *LineInfo, cfg MergeConfig) bool {
	xMin := math.Min(a.XHeight, b.XHeight)
	if xMin <= 0 {
		return false
	}
	if math.Abs(a.Baseline-b.Baseline) >= cfg.BaselineFactor*xMin {
		return false
	}
	ratio := a.XHeight / b.XHeight
	if ratio < 1 {
		ratio = 1 / ratio
	}
	if ratio < cfg.XHeightRatioMin || ratio > cfg.XHeightRatioMax {
		return false
	}
	maxCW := math.Max(a.CharWidth, b.CharWidth)
	return horizontalGap(a.BBox, b.BBox) <= cfg.GapFactor*maxCW
}

func horizontalGap(b1, b2 components.BBox) float64 {
	var gap int
	if b1.PMax.Col < b2.PMin.Col {
		gap = b2.PMin.Col - b1.PMax.Col - 1
	} else if b2.PMax.Col < b1.PMin.Col {
		gap = b1.PMin.Col - b2.PMax.Col - 1
	} else {
		return 0 // bboxes overlap in columns.
	}
	if gap < 0 {
		gap = 0
	}
	return float64(gap)
}

// mergeInto absorbs loser's members into winner (the line with more
// members; ties favor the lower id for determinism) and recomputes
// winner's geometry, tagging loser Merged.
func mergeInto(set *components.Set, a, b *LineInfo) {
	winner, loser := a, b
	if len(b.Members) > len(a.Members) || (len(b.Members) == len(a.Members) && b.ID < a.ID) {
		winner, loser = b, a
	}
	winner.Members = append(winner.Members, loser.Members...)
	sort.Slice(winner.Members, func(i, j int) bool {
		return set.Get(winner.Members[i]).MassCenterC < set.Get(winner.Members[j]).MassCenterC
	})
	computeGeometry(set, winner)
	loser.Tag = TagMerged
	loser.Members = nil
}

func activeIndices(ls *LineSet) []int {
	var out []int
	for i, l := range ls.Lines {
		if l.Tag == TagText {
			out = append(out, i)
		}
	}
	return out
}
