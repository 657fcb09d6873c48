package linking

import (
	"testing"

	"github.com/deepteams/scribo/internal/components"
	"github.com/deepteams/scribo/internal/raster"
)

func threeRects(h1, h2, h3 int) *components.Set {
	rows, cols := 300, 100
	center := rows / 2
	mask := raster.NewImage2D[bool](rows, cols)
	place := func(c0, c1, h int) {
		r0, r1 := center-h/2, center-h/2+h-1
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				mask.Set(r, c, true)
			}
		}
	}
	place(10, 30, h1)
	place(40, 60, h2)
	place(70, 90, h3)
	_, set := components.Extract(mask, components.Connectivity8)
	return set
}

// TestEqualHeightRectanglesLinkIntoOneGroup covers spec.md's E3.
func TestEqualHeightRectanglesLinkIntoOneGroup(t *testing.T) {
	set := threeRects(21, 21, 21)

	left := Left(set, 1.0)
	right := Right(set, 1.0)
	merged := MergeDoubleLink(left, right)
	filtered := HeightRatioFilter(set, merged, 2.5)
	groups := Group(filtered)

	g1, g2, g3 := groups.GroupID(1), groups.GroupID(2), groups.GroupID(3)
	if g1 != g2 || g2 != g3 {
		t.Fatalf("expected all three components in one group, got %d %d %d", g1, g2, g3)
	}
}

// TestLargeHeightRatioBlocksLinking covers spec.md's E4.
func TestLargeHeightRatioBlocksLinking(t *testing.T) {
	set := threeRects(21, 105, 21) // middle rectangle 5x taller

	left := Left(set, 1.0)
	right := Right(set, 1.0)
	merged := MergeDoubleLink(left, right)
	filtered := HeightRatioFilter(set, merged, 2.5)
	groups := Group(filtered)

	g1, g2, g3 := groups.GroupID(1), groups.GroupID(2), groups.GroupID(3)
	if g1 == g2 || g2 == g3 {
		t.Fatalf("height-ratio filter should have blocked links into the tall middle rectangle, got groups %d %d %d", g1, g2, g3)
	}
}

// TestSingletonHasNoNeighbor covers spec.md's E2: an isolated component has
// no left or right link.
func TestSingletonHasNoNeighbor(t *testing.T) {
	mask := raster.NewImage2D[bool](100, 100)
	for r := 40; r <= 60; r++ {
		for c := 10; c <= 90; c++ {
			mask.Set(r, c, true)
		}
	}
	_, set := components.Extract(mask, components.Connectivity8)

	left := Left(set, 1.0)
	right := Right(set, 1.0)
	if left.Link[1] != 1 {
		t.Errorf("left link of singleton = %d, want self (1)", left.Link[1])
	}
	if right.Link[1] != 1 {
		t.Errorf("right link of singleton = %d, want self (1)", right.Link[1])
	}
}

func TestMergeDoubleLinkRequiresBidirectionalAgreement(t *testing.T) {
	// Right says 1->2, but left of 2 points elsewhere (not 1): link must not survive.
	right := newLinks(2)
	right.Link[1] = 2
	left := newLinks(2)
	left.Link[2] = 2 // 2's nearest left neighbor is itself, not 1.

	merged := MergeDoubleLink(left, right)
	if merged.Link[1] != 1 {
		t.Errorf("merged.Link[1] = %d, want 1 (no bidirectional agreement)", merged.Link[1])
	}
}
