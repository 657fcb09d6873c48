package components

import (
	"testing"

	"github.com/deepteams/scribo/internal/raster"
)

func rect(mask *raster.Binary, r0, c0, r1, c1 int) {
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			mask.Set(r, c, true)
		}
	}
}

func TestExtractSingleBar(t *testing.T) {
	mask := raster.NewImage2D[bool](100, 100)
	rect(mask, 40, 10, 60, 90)

	labels, set := Extract(mask, Connectivity8)
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	comp := set.Get(1)
	if comp.PixelCount != 21*81 {
		t.Errorf("PixelCount = %d, want %d", comp.PixelCount, 21*81)
	}
	if comp.BBox.PMin != (Point{40, 10}) || comp.BBox.PMax != (Point{60, 90}) {
		t.Errorf("BBox = %+v, want pmin (40,10) pmax (60,90)", comp.BBox)
	}
	if labels.At(50, 50) != 1 {
		t.Errorf("labels.At(50,50) = %d, want 1", labels.At(50, 50))
	}
	if labels.At(0, 0) != 0 {
		t.Errorf("labels.At(0,0) = %d, want 0 (background)", labels.At(0, 0))
	}
}

func TestExtractThreeRectangles(t *testing.T) {
	mask := raster.NewImage2D[bool](100, 100)
	rect(mask, 45, 10, 55, 30)
	rect(mask, 45, 40, 55, 60)
	rect(mask, 45, 70, 55, 90)

	_, set := Extract(mask, Connectivity8)
	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}
	for i := uint32(1); i <= 3; i++ {
		if set.Get(i).PixelCount != 11*21 {
			t.Errorf("component %d PixelCount = %d, want %d", i, set.Get(i).PixelCount, 11*21)
		}
	}
}

func TestLabelIDsAreContiguous(t *testing.T) {
	mask := raster.NewImage2D[bool](20, 20)
	rect(mask, 1, 1, 2, 2)
	rect(mask, 10, 10, 11, 11)

	labels, set := Extract(mask, Connectivity8)
	seen := map[uint32]bool{0: true}
	for r := 0; r < labels.Rows(); r++ {
		for c := 0; c < labels.Cols(); c++ {
			seen[labels.At(r, c)] = true
		}
	}
	if len(seen) != set.Len()+1 {
		t.Errorf("saw %d distinct labels (incl. background), want %d", len(seen), set.Len()+1)
	}
	for id := uint32(1); id <= uint32(set.Len()); id++ {
		if !seen[id] {
			t.Errorf("label id %d missing from label image", id)
		}
	}
}

func TestSmallFilterMarksIgnoredWithoutRemoving(t *testing.T) {
	mask := raster.NewImage2D[bool](20, 20)
	rect(mask, 1, 1, 1, 1) // 1 pixel
	rect(mask, 10, 10, 15, 15)

	_, set := Extract(mask, Connectivity8)
	before := set.Len()
	SmallFilter(set, 3)
	if set.Len() != before {
		t.Errorf("SmallFilter changed Len() from %d to %d; ids must remain stable", before, set.Len())
	}
	var ignored int
	for i := 1; i <= set.Len(); i++ {
		if set.Get(uint32(i)).Tag == TagIgnored {
			ignored++
		}
	}
	if ignored != 1 {
		t.Errorf("ignored count = %d, want 1", ignored)
	}
}
