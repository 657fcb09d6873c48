package separators

import (
	"testing"

	"github.com/deepteams/scribo/internal/raster"
)

func TestVerticalIsolatesLongRuns(t *testing.T) {
	mask := raster.NewImage2D[bool](100, 20)
	for r := 0; r < 100; r++ {
		mask.Set(r, 10, true) // full-height vertical ruled line
	}
	for r := 40; r < 44; r++ {
		mask.Set(r, 5, true) // short stroke, not a separator
	}

	out := Vertical(mask, 81)
	if !out.At(50, 10) {
		t.Error("long vertical run at col 10 should be detected as a separator")
	}
	if out.At(42, 5) {
		t.Error("short stroke at col 5 should not be detected as a separator")
	}
}

func TestWhitespaceFindsWideGutter(t *testing.T) {
	mask := raster.NewImage2D[bool](60, 100)
	// Two text blocks with a wide gap spanning columns 30 through 69.
	for r := 10; r < 50; r += 3 {
		for c := 0; c < 30; c++ {
			mask.Set(r, c, true)
		}
		for c := 70; c < 100; c++ {
			mask.Set(r, c, true)
		}
	}
	out := Whitespace(mask)
	if !out.At(30, 50) {
		t.Error("wide empty gutter at col 50 should be flagged whitespace")
	}
	if out.At(30, 15) {
		t.Error("text column at col 15 should not be flagged whitespace")
	}
}
