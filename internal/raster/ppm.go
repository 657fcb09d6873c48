package raster

import (
	"bufio"
	"fmt"
	"io"

	"github.com/deepteams/scribo/internal/pool"
)

// Errors returned by the PPM/PBM codec: one sentinel value per failure mode
// so callers can errors.Is against a specific cause.
var (
	ErrInvalidMagic  = fmt.Errorf("raster: invalid PNM magic number")
	ErrInvalidHeader = fmt.Errorf("raster: invalid PNM header")
	ErrTruncated     = fmt.Errorf("raster: truncated PNM data")
)

// WritePPM writes an RGB8 raster as a binary (P6) PPM file, the format the
// debug dumper uses for *.ppm artifacts (object_links.ppm, step1_bboxes.ppm,
// ...).
func WritePPM(w io.Writer, img *RGB8) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Cols(), img.Rows()); err != nil {
		return err
	}
	buf := pool.Get(img.Cols() * 3)
	defer pool.Put(buf)
	for r := 0; r < img.Rows(); r++ {
		row := img.Row(r)
		for c, px := range row {
			buf[c*3] = px.R
			buf[c*3+1] = px.G
			buf[c*3+2] = px.B
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePBM writes a Binary mask as a binary (P4) PBM file, the format used
// for *.pbm debug artifacts (whitespaces.pbm, vseparators.pbm,
// all_separators.pbm, denoised.pbm). true is written as a set bit (ink).
func WritePBM(w io.Writer, mask *Binary) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P4\n%d %d\n", mask.Cols(), mask.Rows()); err != nil {
		return err
	}
	rowBytes := (mask.Cols() + 7) / 8
	buf := pool.Get(rowBytes)
	defer pool.Put(buf)
	for r := 0; r < mask.Rows(); r++ {
		for i := range buf {
			buf[i] = 0
		}
		for c := 0; c < mask.Cols(); c++ {
			if mask.AtUnsafe(r, c) {
				buf[c/8] |= 1 << uint(7-c%8)
			}
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPNM reads a binary P4 (PBM) or P6 (PPM) image, returning an RGB8
// raster in either case (PBM pixels are expanded to black/white RGB).
// ExtractText and the job wrapper do not call it; they decode only through
// image.Decode.
func ReadPNM(r io.Reader) (*RGB8, error) {
	br := bufio.NewReader(r)
	magic, err := readToken(br)
	if err != nil {
		return nil, err
	}
	switch magic {
	case "P6":
		return readP6(br)
	case "P4":
		return readP4(br)
	default:
		return nil, ErrInvalidMagic
	}
}

func readToken(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if b == '#' {
			// Comment: skip to end of line.
			for {
				c, err := r.ReadByte()
				if err != nil || c == '\n' {
					break
				}
			}
			if len(buf) > 0 {
				return string(buf), nil
			}
			continue
		}
		if isSpace(b) {
			if len(buf) > 0 {
				return string(buf), nil
			}
			continue
		}
		buf = append(buf, b)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func readInt(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
		return 0, ErrInvalidHeader
	}
	return v, nil
}

func readP6(r *bufio.Reader) (*RGB8, error) {
	cols, err := readInt(r)
	if err != nil {
		return nil, err
	}
	rows, err := readInt(r)
	if err != nil {
		return nil, err
	}
	maxVal, err := readInt(r)
	if err != nil {
		return nil, err
	}
	if maxVal <= 0 || maxVal > 255 {
		return nil, ErrInvalidHeader
	}
	out := NewImage2D[RGB](rows, cols)
	buf := make([]byte, cols*3)
	for row := 0; row < rows; row++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrTruncated
		}
		for c := 0; c < cols; c++ {
			out.SetUnsafe(row, c, RGB{R: buf[c*3], G: buf[c*3+1], B: buf[c*3+2]})
		}
	}
	return out, nil
}

func readP4(r *bufio.Reader) (*RGB8, error) {
	cols, err := readInt(r)
	if err != nil {
		return nil, err
	}
	rows, err := readInt(r)
	if err != nil {
		return nil, err
	}
	out := NewImage2D[RGB](rows, cols)
	rowBytes := (cols + 7) / 8
	buf := make([]byte, rowBytes)
	for row := 0; row < rows; row++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrTruncated
		}
		for c := 0; c < cols; c++ {
			bit := buf[c/8] & (1 << uint(7-c%8))
			v := uint8(0xff)
			if bit != 0 {
				v = 0
			}
			out.SetUnsafe(row, c, RGB{R: v, G: v, B: v})
		}
	}
	return out, nil
}
