// Package debugdump writes the named PPM/PBM/text artifacts spec.md §6 and
// SPEC_FULL.md §12 describe, one per pipeline stage, when Options.DebugDir
// is set. Every write is best-effort: a failure to create the debug
// directory or write an artifact is returned as an error, which the
// pipeline ignores; it is never fatal.
package debugdump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepteams/scribo/internal/components"
	"github.com/deepteams/scribo/internal/linking"
	"github.com/deepteams/scribo/internal/lines"
	"github.com/deepteams/scribo/internal/raster"
)

// Dumper writes artifacts under one directory, silently doing nothing for
// every method if Dir is empty (the "no debug output" default).
type Dumper struct {
	Dir string
}

// New returns a Dumper rooted at dir. An empty dir disables all writes.
func New(dir string) *Dumper { return &Dumper{Dir: dir} }

// Enabled reports whether this Dumper actually writes anything.
func (d *Dumper) Enabled() bool { return d != nil && d.Dir != "" }

func (d *Dumper) path(name string) string { return filepath.Join(d.Dir, name) }

func (d *Dumper) ensureDir() error {
	return os.MkdirAll(d.Dir, 0o755)
}

// Binary writes a boolean mask as a PBM artifact (whitespaces.pbm,
// vseparators.pbm, input_wo_vseparators.pbm, denoised.pbm,
// all_separators.pbm, ...).
func (d *Dumper) Binary(name string, mask *raster.Binary) error {
	if !d.Enabled() {
		return nil
	}
	if err := d.ensureDir(); err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	f, err := os.Create(d.path(name))
	if err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	defer f.Close()
	return raster.WritePBM(f, mask)
}

// RGB writes a color raster as a PPM artifact (object_links.ppm,
// hratio_links_decision_image.ppm, stepN_bboxes.ppm, stepN_x_height.ppm,
// stepN_looks_like_a_text_line.ppm, ...).
func (d *Dumper) RGB(name string, img *raster.RGB8) error {
	if !d.Enabled() {
		return nil
	}
	if err := d.ensureDir(); err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	f, err := os.Create(d.path(name))
	if err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	defer f.Close()
	return raster.WritePPM(f, img)
}

// BBoxOverlay renders base with every bbox in boxes outlined in color,
// producing the stepN_bboxes.ppm / stepN_bboxes_enlarged.ppm family.
func BBoxOverlay(base *raster.Gray8, boxes []components.BBox, color raster.RGB, enlargeBy int) *raster.RGB8 {
	rows, cols := base.Rows(), base.Cols()
	out := raster.NewImage2D[raster.RGB](rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g := base.AtUnsafe(r, c)
			out.SetUnsafe(r, c, raster.RGB{R: g, G: g, B: g})
		}
	}
	for _, b := range boxes {
		r0, r1 := b.PMin.Row-enlargeBy, b.PMax.Row+enlargeBy
		c0, c1 := b.PMin.Col-enlargeBy, b.PMax.Col+enlargeBy
		outlineRect(out, r0, c0, r1, c1, color)
	}
	return out
}

func outlineRect(img *raster.RGB8, r0, c0, r1, c1 int, color raster.RGB) {
	rows, cols := img.Rows(), img.Cols()
	for c := c0; c <= c1; c++ {
		setIfInBounds(img, r0, c, color, rows, cols)
		setIfInBounds(img, r1, c, color, rows, cols)
	}
	for r := r0; r <= r1; r++ {
		setIfInBounds(img, r, c0, color, rows, cols)
		setIfInBounds(img, r, c1, color, rows, cols)
	}
}

func setIfInBounds(img *raster.RGB8, r, c int, color raster.RGB, rows, cols int) {
	if r >= 0 && r < rows && c >= 0 && c < cols {
		img.SetUnsafe(r, c, color)
	}
}

// LinkOverlay renders base with a line drawn from each object's mass
// center to its linked neighbor's, producing object_links.ppm and
// hratio_links_decision_image.ppm (spec.md §6).
func LinkOverlay(base *raster.Gray8, set *components.Set, links linking.Links) *raster.RGB8 {
	rows, cols := base.Rows(), base.Cols()
	out := raster.NewImage2D[raster.RGB](rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g := base.AtUnsafe(r, c)
			out.SetUnsafe(r, c, raster.RGB{R: g, G: g, B: g})
		}
	}
	for s := 1; s < len(links.Link); s++ {
		t := links.Link[s]
		if t == uint32(s) {
			continue
		}
		from := set.Get(uint32(s))
		to := set.Get(t)
		drawLine(out, int(from.MassCenterR), int(from.MassCenterC), int(to.MassCenterR), int(to.MassCenterC), raster.RGB{G: 255})
	}
	return out
}

// drawLine plots a line segment with Bresenham's algorithm.
func drawLine(img *raster.RGB8, r0, c0, r1, c1 int, color raster.RGB) {
	rows, cols := img.Rows(), img.Cols()
	dr, dc := abs(r1-r0), abs(c1-c0)
	sr, sc := sign(r1-r0), sign(c1-c0)
	err := dr - dc
	r, c := r0, c0
	for {
		setIfInBounds(img, r, c, color, rows, cols)
		if r == r1 && c == c1 {
			break
		}
		e2 := 2 * err
		if e2 > -dc {
			err -= dc
			r += sr
		}
		if e2 < dr {
			err += dr
			c += sc
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// XHeightOverlay draws the baseline and meanline of every line in ls as
// horizontal segments spanning its bbox width, producing stepN_x_height.ppm.
func XHeightOverlay(base *raster.Gray8, ls *lines.LineSet) *raster.RGB8 {
	rows, cols := base.Rows(), base.Cols()
	out := raster.NewImage2D[raster.RGB](rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g := base.AtUnsafe(r, c)
			out.SetUnsafe(r, c, raster.RGB{R: g, G: g, B: g})
		}
	}
	for _, l := range ls.NonIgnored() {
		drawHLine(out, int(l.Baseline), l.BBox.PMin.Col, l.BBox.PMax.Col, raster.RGB{R: 255})
		drawHLine(out, int(l.Meanline), l.BBox.PMin.Col, l.BBox.PMax.Col, raster.RGB{B: 255})
	}
	return out
}

func drawHLine(img *raster.RGB8, r, c0, c1 int, color raster.RGB) {
	if r < 0 || r >= img.Rows() {
		return
	}
	for c := c0; c <= c1; c++ {
		if c >= 0 && c < img.Cols() {
			img.SetUnsafe(r, c, color)
		}
	}
}

// LooksLikeTextLineOverlay colors each equivalence class's bbox green when
// it survived as a text line and red otherwise (Ignored/Merged/
// Pathological), producing stepN_looks_like_a_text_line.ppm.
func LooksLikeTextLineOverlay(base *raster.Gray8, ls *lines.LineSet) *raster.RGB8 {
	rows, cols := base.Rows(), base.Cols()
	out := raster.NewImage2D[raster.RGB](rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g := base.AtUnsafe(r, c)
			out.SetUnsafe(r, c, raster.RGB{R: g, G: g, B: g})
		}
	}
	for _, l := range ls.Lines {
		color := raster.RGB{R: 255}
		if l.Tag == lines.TagText {
			color = raster.RGB{G: 255}
		}
		outlineRect(out, l.BBox.PMin.Row, l.BBox.PMin.Col, l.BBox.PMax.Row, l.BBox.PMax.Col, color)
	}
	return out
}

// BBoxesOf collects the bbox of every line in ls that passes keep.
func BBoxesOf(ls *lines.LineSet, keep func(lines.LineInfo) bool) []components.BBox {
	var out []components.BBox
	for _, l := range ls.Lines {
		if keep(l) {
			out = append(out, l.BBox)
		}
	}
	return out
}

// LineTable writes the stepN_bboxes_100p.txt artifact: one line per
// non-Merged/Ignored/Pathological text line, whitespace-separated
// "pmin_row pmin_col pmax_row pmax_col card baseline x_height meanline
// d_height a_height char_space char_width" (spec.md §6 "Debug text format").
func (d *Dumper) LineTable(name string, ls *lines.LineSet) error {
	if !d.Enabled() {
		return nil
	}
	if err := d.ensureDir(); err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	f, err := os.Create(d.path(name))
	if err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	defer f.Close()

	for _, l := range ls.NonIgnored() {
		_, err := fmt.Fprintf(f, "%d %d %d %d %d %.2f %.2f %.2f %.2f %.2f %.2f %.2f\n",
			l.BBox.PMin.Row, l.BBox.PMin.Col, l.BBox.PMax.Row, l.BBox.PMax.Col,
			len(l.Members), l.Baseline, l.XHeight, l.Meanline, l.DHeight, l.AHeight,
			l.CharSpace, l.CharWidth)
		if err != nil {
			return fmt.Errorf("debugdump: %w", err)
		}
	}
	return nil
}
