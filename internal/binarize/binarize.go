package binarize

import "github.com/deepteams/scribo/internal/raster"

// Algo mirrors the root package's BinarizationAlgo without creating an
// import cycle back to it.
type Algo int

const (
	AlgoConvert Algo = iota
	AlgoSauvola
	AlgoSauvolaMs
)

// Config bundles everything Run needs, decoupled from the root Options
// struct.
type Config struct {
	Algo            Algo
	ConvertThresh   uint8
	SauvolaWindow   int
	SauvolaK        float64
	SauvolaR        float64
	MultiScaleDepth int
}

// Run dispatches to the configured binarizer and reports whether the
// resulting mask has any foreground pixel at all (its absence is
// spec.md §7's non-fatal DegenerateOutput condition).
func Run(gray *raster.Gray8, cfg Config) (mask *raster.Binary, hasForeground bool) {
	switch cfg.Algo {
	case AlgoConvert:
		mask = Convert(gray, cfg.ConvertThresh)
	case AlgoSauvola:
		mask = Sauvola(gray, SauvolaParams{Window: cfg.SauvolaWindow, K: cfg.SauvolaK, R: cfg.SauvolaR})
	default:
		mask = SauvolaMs(gray, MultiScaleParams{
			Sauvola: SauvolaParams{Window: cfg.SauvolaWindow, K: cfg.SauvolaK, R: cfg.SauvolaR},
			Depth:   cfg.MultiScaleDepth,
		})
	}
	hasForeground = anyForeground(mask)
	return mask, hasForeground
}

func anyForeground(mask *raster.Binary) bool {
	for r := 0; r < mask.Rows(); r++ {
		row := mask.Row(r)
		for _, v := range row {
			if v {
				return true
			}
		}
	}
	return false
}
