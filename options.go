package scribo

import "fmt"

// BinarizationAlgo selects which binarizer the pipeline runs.
type BinarizationAlgo int

const (
	// AlgoConvert applies a single fixed global threshold (no windowing).
	AlgoConvert BinarizationAlgo = iota
	// AlgoSauvola applies single-scale Sauvola binarization.
	AlgoSauvola
	// AlgoSauvolaMs applies the multi-scale Sauvola binarization (default).
	AlgoSauvolaMs
)

// String returns a short name for the algorithm, used in debug filenames.
func (a BinarizationAlgo) String() string {
	switch a {
	case AlgoConvert:
		return "convert"
	case AlgoSauvola:
		return "sauvola"
	case AlgoSauvolaMs:
		return "sauvola_ms"
	default:
		return "unknown"
	}
}

// Options controls every stage of the pipeline. The zero value is not
// valid; use DefaultOptions and override individual fields.
type Options struct {
	// EnableSubsample antialias-downscales the input 2x or 3x when it
	// exceeds 2500 or 5000 px on its longest side.
	EnableSubsample bool

	// EnableFgExtraction splits foreground from background before
	// binarization, with the area parameter Lambda (0 = auto, 1.2*(H+W)).
	EnableFgExtraction bool
	Lambda             float64

	// EnableDeskew rotates the image by its estimated page skew angle.
	EnableDeskew bool

	// EnableDenoisePre and EnableDenoisePost gate denoising before and
	// after binarization respectively.
	EnableDenoisePre  bool
	EnableDenoisePost bool

	// BinarizationAlgo selects the binarizer.
	BinarizationAlgo BinarizationAlgo

	// SauvolaWindow is the Sauvola window side, must be odd and >= 3.
	SauvolaWindow int
	// SauvolaK is Sauvola's K parameter.
	SauvolaK float64
	// SauvolaR is Sauvola's dynamic range parameter, fixed at 128 in the
	// reference formula but exposed for experimentation.
	SauvolaR float64
	// MultiScaleDepth is the number of pyramid levels for SauvolaMs.
	MultiScaleDepth int

	// EnableLineSeps and EnableWhitespaceSeps gate separator extraction.
	EnableLineSeps       bool
	EnableWhitespaceSeps bool
	// VSeparatorLength is the vertical structuring-element length used to
	// isolate ruled lines (default 81).
	VSeparatorLength int

	// MinComponentPixels marks components smaller than this pixel count
	// as Ignored rather than deleting them.
	MinComponentPixels int

	// LinkAlpha scales dmax(s) = LinkAlpha * max(width(s), height(s)).
	LinkAlpha float64
	// HRatioThreshold rejects a surviving link when
	// max(h_s, h_t)/min(h_s, h_t) exceeds this value.
	HRatioThreshold float64

	// MergeBaselineFactor, MergeXHeightRatioMin/Max, and
	// MergeGapFactor control the line-merging pass (§4.5).
	MergeBaselineFactor float64
	MergeXHeightRatioMin float64
	MergeXHeightRatioMax float64
	MergeGapFactor       float64

	// OCRLanguage is a BCP-47-ish language tag forwarded to the recognizer.
	OCRLanguage string

	// PlausibilityLetterRatio and PlausibilityWhitespaceRatio are the
	// thresholds in the final plausibility filter (§4.6).
	PlausibilityLetterRatio     float64
	PlausibilityWhitespaceRatio float64

	// DebugDir, when non-empty, receives named PPM/PBM/text debug
	// artifacts from every stage (§6, §12).
	DebugDir string

	// Connectivity is 4 or 8, used by the component extractor.
	Connectivity int
}

// DefaultOptions returns the pipeline's default configuration, matching the
// constants named throughout spec.md §4 and §6.
func DefaultOptions() Options {
	return Options{
		EnableSubsample:    false,
		EnableFgExtraction: false,
		Lambda:             0, // 0 means auto: 1.2*(H+W), resolved at run time.
		EnableDeskew:       false,
		EnableDenoisePre:   true,
		EnableDenoisePost:  true,

		BinarizationAlgo: AlgoSauvolaMs,
		SauvolaWindow:    101,
		SauvolaK:         0.34,
		SauvolaR:         128,
		MultiScaleDepth:  3,

		EnableLineSeps:       true,
		EnableWhitespaceSeps: true,
		VSeparatorLength:     81,

		MinComponentPixels: 3,

		LinkAlpha:       1.0,
		HRatioThreshold: 2.5,

		MergeBaselineFactor:  0.2,
		MergeXHeightRatioMin: 0.6,
		MergeXHeightRatioMax: 1.65,
		MergeGapFactor:       3.0,

		OCRLanguage: "eng",

		PlausibilityLetterRatio:     0.7,
		PlausibilityWhitespaceRatio: 0.3,

		Connectivity: 8,
	}
}

// Validate reports a descriptive error for any field outside its documented
// range. It does not mutate Options; callers who want zero-value fields
// filled in should start from DefaultOptions.
func (o Options) Validate() error {
	if o.SauvolaWindow < 3 || o.SauvolaWindow%2 == 0 {
		return fmt.Errorf("scribo: invalid SauvolaWindow %d (must be odd and >= 3)", o.SauvolaWindow)
	}
	if o.MultiScaleDepth < 1 {
		return fmt.Errorf("scribo: invalid MultiScaleDepth %d (must be >= 1)", o.MultiScaleDepth)
	}
	if o.VSeparatorLength < 1 {
		return fmt.Errorf("scribo: invalid VSeparatorLength %d (must be >= 1)", o.VSeparatorLength)
	}
	if o.LinkAlpha <= 0 {
		return fmt.Errorf("scribo: invalid LinkAlpha %.2f (must be > 0)", o.LinkAlpha)
	}
	if o.HRatioThreshold <= 1 {
		return fmt.Errorf("scribo: invalid HRatioThreshold %.2f (must be > 1)", o.HRatioThreshold)
	}
	if o.Connectivity != 4 && o.Connectivity != 8 {
		return fmt.Errorf("scribo: invalid Connectivity %d (must be 4 or 8)", o.Connectivity)
	}
	if o.PlausibilityLetterRatio <= 0 || o.PlausibilityLetterRatio > 1 {
		return fmt.Errorf("scribo: invalid PlausibilityLetterRatio %.2f (must be in (0,1])", o.PlausibilityLetterRatio)
	}
	if o.PlausibilityWhitespaceRatio <= 0 || o.PlausibilityWhitespaceRatio > 1 {
		return fmt.Errorf("scribo: invalid PlausibilityWhitespaceRatio %.2f (must be in (0,1])", o.PlausibilityWhitespaceRatio)
	}
	return nil
}
