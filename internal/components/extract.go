package components

import (
	"github.com/deepteams/scribo/internal/raster"
	"github.com/deepteams/scribo/internal/unionfind"
)

// Connectivity selects the causal half-neighborhood scanned during the
// first labeling pass.
type Connectivity int

const (
	Connectivity4 Connectivity = 4
	Connectivity8 Connectivity = 8
)

// Extract performs two-pass connected-component labeling over a binary
// mask (spec.md §4.2): a row-major sweep assigns provisional labels via a
// union-find over equivalences, then a root-renumbering sweep assigns
// contiguous ids 1..N and accumulates per-component bbox, pixel count, and
// mass center.
func Extract(mask *raster.Binary, conn Connectivity) (*raster.Label32, *Set) {
	rows, cols := mask.Rows(), mask.Cols()
	labels := raster.NewImage2D[uint32](rows, cols)

	// Upper bound on distinct provisional labels: one per foreground pixel.
	uf := unionfind.New(rows*cols + 1)
	nextLabel := uint32(1)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !mask.AtUnsafe(r, c) {
				continue
			}
			neighbors := causalNeighborLabels(labels, r, c, conn)
			if len(neighbors) == 0 {
				labels.SetUnsafe(r, c, nextLabel)
				nextLabel++
				continue
			}
			min := neighbors[0]
			for _, n := range neighbors[1:] {
				if n < min {
					min = n
				}
			}
			labels.SetUnsafe(r, c, min)
			for _, n := range neighbors {
				uf.Union(int(n), int(min))
			}
		}
	}

	// Root-renumbering sweep: map each provisional root to a contiguous id.
	rootToID := make(map[int]uint32)
	var nComponents uint32
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			lbl := labels.AtUnsafe(r, c)
			if lbl == 0 {
				continue
			}
			root := uf.Find(int(lbl))
			id, ok := rootToID[root]
			if !ok {
				nComponents++
				id = nComponents
				rootToID[root] = id
			}
			labels.SetUnsafe(r, c, id)
		}
	}

	set := NewSet(int(nComponents), rows, cols)
	// Accumulate bbox, pixel count, and mass center in the same sweep.
	sumR := make([]float64, nComponents+1)
	sumC := make([]float64, nComponents+1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := labels.AtUnsafe(r, c)
			if id == 0 {
				continue
			}
			comp := &set.Components[id]
			comp.ID = id
			if comp.PixelCount == 0 {
				comp.BBox = BBox{PMin: Point{r, c}, PMax: Point{r, c}}
			} else {
				if r < comp.BBox.PMin.Row {
					comp.BBox.PMin.Row = r
				}
				if c < comp.BBox.PMin.Col {
					comp.BBox.PMin.Col = c
				}
				if r > comp.BBox.PMax.Row {
					comp.BBox.PMax.Row = r
				}
				if c > comp.BBox.PMax.Col {
					comp.BBox.PMax.Col = c
				}
			}
			comp.PixelCount++
			sumR[id] += float64(r)
			sumC[id] += float64(c)
		}
	}
	for id := uint32(1); id <= nComponents; id++ {
		comp := &set.Components[id]
		if comp.PixelCount > 0 {
			comp.MassCenterR = sumR[id] / float64(comp.PixelCount)
			comp.MassCenterC = sumC[id] / float64(comp.PixelCount)
		}
	}

	return labels, set
}

// causalNeighborLabels returns the nonzero labels (possibly repeated) of the
// already-visited neighbors of (r,c) in row-major order: west always;
// north, and for 8-connectivity northwest/northeast as well.
func causalNeighborLabels(labels *raster.Label32, r, c int, conn Connectivity) []uint32 {
	var out []uint32
	add := func(rr, cc int) {
		if rr < 0 || cc < 0 || cc >= labels.Cols() {
			return
		}
		if lbl := labels.AtUnsafe(rr, cc); lbl != 0 {
			out = append(out, lbl)
		}
	}
	add(r, c-1)
	add(r-1, c)
	if conn == Connectivity8 {
		add(r-1, c-1)
		add(r-1, c+1)
	}
	return out
}
