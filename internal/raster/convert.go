package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// FromStdImage converts a standard library image.Image to an RGB8 raster,
// the entry point from whatever decoder (PNG/JPEG/BMP/TIFF/...) the caller
// used.
func FromStdImage(src image.Image) *RGB8 {
	b := src.Bounds()
	out := NewImage2D[RGB](b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetUnsafe(y, x, RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return out
}

// ToStdImage converts an RGB8 raster back to a standard library image, for
// debug artifact encoders that accept image.Image.
func ToStdImage(img *RGB8) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, img.Cols(), img.Rows()))
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			px := img.AtUnsafe(r, c)
			out.SetRGBA(c, r, color.RGBA{R: px.R, G: px.G, B: px.B, A: 0xff})
		}
	}
	return out
}

// Grayscale converts an RGB8 raster to Gray8 using ITU-R BT.601 luma
// weights, matching Go's standard color.GrayModel conversion so pixel
// values agree with any stdlib-decoded grayscale source.
func Grayscale(src *RGB8) *Gray8 {
	out := NewImage2D[uint8](src.Rows(), src.Cols())
	for r := 0; r < src.Rows(); r++ {
		for c := 0; c < src.Cols(); c++ {
			px := src.AtUnsafe(r, c)
			gray := color.GrayModel.Convert(color.RGBA{R: px.R, G: px.G, B: px.B, A: 0xff}).(color.Gray)
			out.SetUnsafe(r, c, gray.Y)
		}
	}
	return out
}

// EncodePNG encodes a standard library image as PNG bytes, the format
// handed to OCR backends that accept an in-memory image buffer rather than
// a raw raster (spec.md §6 "OCR boundary").
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BinaryToStdImage renders a Binary mask as an 8-bit grayscale image (for
// example for PNG encoding before OCR), with true (foreground/ink) drawn
// black and background white.
func BinaryToStdImage(mask *Binary) image.Image {
	out := image.NewGray(image.Rect(0, 0, mask.Cols(), mask.Rows()))
	for r := 0; r < mask.Rows(); r++ {
		for c := 0; c < mask.Cols(); c++ {
			v := uint8(0xff)
			if mask.AtUnsafe(r, c) {
				v = 0
			}
			out.SetGray(c, r, color.Gray{Y: v})
		}
	}
	return out
}
