package components

import "github.com/deepteams/scribo/internal/raster"

// Set is an ordered list of Components indexed by label id, plus the
// aggregated separator mask. Set[0] is the background sentinel: a
// zero-valued Component that is never a linking candidate.
type Set struct {
	Components []Component
	Separators *raster.Binary
}

// NewSet allocates a Set for n components (ids 1..n) over an image of the
// given dimensions.
func NewSet(n, rows, cols int) *Set {
	s := &Set{
		Components: make([]Component, n+1),
		Separators: raster.NewImage2D[bool](rows, cols),
	}
	return s
}

// Get returns the component with the given id, or the background sentinel
// for id 0.
func (s *Set) Get(id uint32) *Component { return &s.Components[id] }

// Len returns the number of non-background components (N, per spec.md's
// {1..N} label contiguity invariant).
func (s *Set) Len() int { return len(s.Components) - 1 }

// AddSeparators OR-merges mask into the set's separator channel without
// touching component ids, and marks every component whose bbox overlaps a
// separator pixel as TagSeparator. Called once per separator source
// (vertical-line mask, then whitespace mask); repeated calls accumulate.
func (s *Set) AddSeparators(mask *raster.Binary) {
	rows, cols := s.Separators.Rows(), s.Separators.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if mask.AtUnsafe(r, c) {
				s.Separators.SetUnsafe(r, c, true)
			}
		}
	}
	for i := 1; i <= s.Len(); i++ {
		comp := &s.Components[i]
		if comp.Tag == TagSeparator {
			continue
		}
		if bboxOverlapsMask(comp.BBox, mask) {
			comp.Tag = TagSeparator
		}
	}
}

func bboxOverlapsMask(b BBox, mask *raster.Binary) bool {
	for r := b.PMin.Row; r <= b.PMax.Row; r++ {
		for c := b.PMin.Col; c <= b.PMax.Col; c++ {
			if mask.AtUnsafe(r, c) {
				return true
			}
		}
	}
	return false
}
