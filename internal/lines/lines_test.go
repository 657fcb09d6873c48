package lines

import (
	"testing"

	"github.com/deepteams/scribo/internal/components"
	"github.com/deepteams/scribo/internal/linking"
	"github.com/deepteams/scribo/internal/raster"
)

// wordRow builds a mask with n equal-sized "glyph" blocks sitting on a
// shared baseline, evenly spaced, simulating a single typed word.
func wordRow(n int, glyphW, glyphH, gap int) *components.Set {
	rows := glyphH + 20
	cols := n*(glyphW+gap) + 20
	mask := raster.NewImage2D[bool](rows, cols)
	baseRow := rows - 10
	for i := 0; i < n; i++ {
		c0 := 10 + i*(glyphW+gap)
		for r := baseRow - glyphH + 1; r <= baseRow; r++ {
			for c := c0; c < c0+glyphW; c++ {
				mask.Set(r, c, true)
			}
		}
	}
	_, set := components.Extract(mask, components.Connectivity8)
	return set
}

func buildLineSet(set *components.Set) *LineSet {
	left := linking.Left(set, 3.0)
	right := linking.Right(set, 3.0)
	merged := linking.MergeDoubleLink(left, right)
	filtered := linking.HeightRatioFilter(set, merged, 2.5)
	groups := linking.Group(filtered)
	return Build(set, groups)
}

func TestBuildProducesOneTextLineForAWord(t *testing.T) {
	set := wordRow(5, 8, 20, 4)
	ls := buildLineSet(set)

	nonIgnored := ls.NonIgnored()
	if len(nonIgnored) != 1 {
		t.Fatalf("got %d non-ignored lines, want 1", len(nonIgnored))
	}
	line := nonIgnored[0]
	if len(line.Members) != 5 {
		t.Errorf("line has %d members, want 5", len(line.Members))
	}
	if line.Meanline > line.Baseline {
		t.Errorf("meanline %.1f > baseline %.1f, violates invariant", line.Meanline, line.Baseline)
	}
	if got, want := line.Baseline-line.Meanline, line.XHeight; got != want {
		t.Errorf("x_height = %.1f, want baseline-meanline = %.1f", line.XHeight, want)
	}
}

func TestSingletonComponentIsIgnored(t *testing.T) {
	mask := raster.NewImage2D[bool](60, 60)
	for r := 20; r <= 40; r++ {
		for c := 20; c <= 30; c++ {
			mask.Set(r, c, true)
		}
	}
	_, set := components.Extract(mask, components.Connectivity8)
	ls := buildLineSet(set)

	if len(ls.Lines) != 1 || ls.Lines[0].Tag != TagIgnored {
		t.Fatalf("expected a single Ignored line for a singleton component, got %+v", ls.Lines)
	}
}

func TestMergeUnifiesTwoAdjacentWordsWithMatchingBaseline(t *testing.T) {
	rows, cols := 60, 200
	mask := raster.NewImage2D[bool](rows, cols)
	baseRow := 40
	glyphH := 10

	place := func(c0 int, n int) {
		for i := 0; i < n; i++ {
			c := c0 + i*10
			for r := baseRow - glyphH + 1; r <= baseRow; r++ {
				for cc := c; cc < c+6; cc++ {
					mask.Set(r, cc, true)
				}
			}
		}
	}
	place(10, 3) // word 1: glyph bboxes span cols 10..35.
	place(51, 3) // word 2: 15px gap from word 1, beyond linking's dmax but
	// within merge's 3*char_width reach, so the two form separate initial
	// line groups that only the merging pass unifies.
	_, set := components.Extract(mask, components.Connectivity8)

	// alpha=1.0 keeps dmax (10px, from glyph height) smaller than the 15px
	// inter-word gap, so Right/Left never links across words: the two
	// groups start out distinct and it is Merge that must unify them.
	left := linking.Left(set, 1.0)
	right := linking.Right(set, 1.0)
	merged := linking.MergeDoubleLink(left, right)
	filtered := linking.HeightRatioFilter(set, merged, 2.5)
	groups := linking.Group(filtered)
	ls := Build(set, groups)

	before := len(ls.NonIgnored())
	if before != 2 {
		t.Fatalf("expected 2 distinct line groups before merging, got %d", before)
	}

	Merge(ls, MergeConfig{BaselineFactor: 0.2, XHeightRatioMin: 0.6, XHeightRatioMax: 1.65, GapFactor: 3.0})
	after := len(ls.NonIgnored())
	if after != 1 {
		t.Fatalf("expected merging to unify the two words into 1 line, got %d", after)
	}
}

func TestTagPathologiesFlagsShortXHeight(t *testing.T) {
	set := wordRow(4, 6, 3, 3) // 3px-tall glyphs: x_height well under 4.
	ls := buildLineSet(set)
	TagPathologies(ls)

	found := false
	for _, l := range ls.Lines {
		if l.Tag == TagPathological {
			found = true
		}
	}
	if !found {
		t.Errorf("expected at least one Pathological line for 3px glyph heights")
	}
}
