package scribo

import (
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Registering BMP and TIFF here, alongside the standard library's own
// GIF/JPEG/PNG registrations, lets ExtractText's image.Decode call
// transparently accept whatever ancillary raster format a caller's job
// wrapper hands it.
func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}
