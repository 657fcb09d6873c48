package scribo

import (
	"context"
	"sort"

	"github.com/deepteams/scribo/internal/binarize"
	"github.com/deepteams/scribo/internal/components"
	"github.com/deepteams/scribo/internal/debugdump"
	"github.com/deepteams/scribo/internal/linking"
	"github.com/deepteams/scribo/internal/lines"
	"github.com/deepteams/scribo/internal/ocr"
	"github.com/deepteams/scribo/internal/plausibility"
	"github.com/deepteams/scribo/internal/raster"
	"github.com/deepteams/scribo/internal/separators"
)

// StageObserver reports pipeline progress the way the original functor's
// on_new_progress_label/on_progress pair did (SPEC_FULL.md §12): OnStage
// fires once per named stage before the stage starts work, OnProgress
// then reports the fraction of named stages reached so far, counting the
// one just announced.
type StageObserver interface {
	OnStage(name string)
	OnProgress(fraction float64)
}

type noopObserver struct{}

func (noopObserver) OnStage(string)     {}
func (noopObserver) OnProgress(float64) {}

// Pipeline runs the full stage sequence in spec.md §2 over one decoded
// image. Pipeline values are not safe for concurrent Run calls that share
// a Recognizer; construct one Pipeline per concurrent document, or supply
// a Recognizer that is itself safe for concurrent use.
type Pipeline struct {
	Opts       Options
	Observer   StageObserver
	Recognizer ocr.Recognizer // nil selects ocr.New(), the build's default.
}

// NewPipeline returns a Pipeline with a no-op observer and the default
// recognizer for this build (gosseract-backed if built with -tags
// gosseract, a pure-Go stub otherwise).
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{Opts: opts, Observer: noopObserver{}}
}

// activeStages computes the named-stage sequence that will actually run,
// the same conditional step count the original functor's nsteps() derives
// from enable_denoising/enable_line_seps/enable_whitespace_seps
// (SPEC_FULL.md §12).
func (p *Pipeline) activeStages() []string {
	var stages []string
	if p.Opts.EnableSubsample {
		stages = append(stages, "subsample")
	}
	if p.Opts.EnableFgExtraction {
		stages = append(stages, "foreground extraction")
	}
	if p.Opts.EnableDeskew {
		stages = append(stages, "deskew")
	}
	if p.Opts.EnableLineSeps || p.Opts.EnableWhitespaceSeps {
		stages = append(stages, "find vertical separators")
	}
	if p.Opts.EnableDenoisePost {
		stages = append(stages, "denoise")
	}
	stages = append(stages, "find components", "link objects", "filter", "rebuild lines", "recognize text")
	return stages
}

// Run executes the pipeline over a decoded RGB raster and returns the
// final, plausibility-filtered text (spec.md §4.6, SPEC_FULL.md §12: the
// filter always runs inside Run, callers never see unfiltered OCR output).
func (p *Pipeline) Run(ctx context.Context, img *raster.RGB8) (string, error) {
	if img.Rows() == 0 || img.Cols() == 0 {
		return "", newError(KindInvalidImage, "", errZeroSizedImage)
	}

	stages := p.activeStages()
	total := len(stages)
	step := 0
	dumper := debugdump.New(p.Opts.DebugDir)

	advance := func(name string) error {
		if err := ctx.Err(); err != nil {
			return newError(KindCancelled, name, err)
		}
		p.Observer.OnStage(name)
		step++
		p.Observer.OnProgress(float64(step) / float64(total))
		return nil
	}

	if p.Opts.EnableSubsample {
		if err := advance("subsample"); err != nil {
			return "", err
		}
		img = subsample(img, subsampleFactor(img.Rows(), img.Cols()))
	}

	var gray *raster.Gray8
	if p.Opts.EnableFgExtraction {
		if err := advance("foreground extraction"); err != nil {
			return "", err
		}
		lambda := resolveLambda(p.Opts.Lambda, img.Rows(), img.Cols())
		gray = splitForeground(raster.Grayscale(img), lambda)
	} else {
		gray = raster.Grayscale(img)
	}
	if p.Opts.EnableDenoisePre {
		gray = denoiseGray(gray)
	}
	if p.Opts.EnableDeskew {
		if err := advance("deskew"); err != nil {
			return "", err
		}
		gray = deskew(gray)
	}

	mask, hasForeground := binarize.Run(gray, binarize.Config{
		Algo:            binarize.Algo(p.Opts.BinarizationAlgo),
		ConvertThresh:   128,
		SauvolaWindow:   p.Opts.SauvolaWindow,
		SauvolaK:        p.Opts.SauvolaK,
		SauvolaR:        p.Opts.SauvolaR,
		MultiScaleDepth: p.Opts.MultiScaleDepth,
	})
	if !hasForeground {
		// Non-fatal per spec.md §7: the caller gets a real, inspectable
		// Kind but is expected to treat it as "no text" rather than a hard
		// failure (job.Run and scribocli both special-case it that way).
		return "", newError(KindDegenerateOutput, "", errNoForeground)
	}

	var vsep *raster.Binary
	if p.Opts.EnableLineSeps || p.Opts.EnableWhitespaceSeps {
		if err := advance("find vertical separators"); err != nil {
			return "", err
		}
		mask, vsep = p.extractSeparators(mask, dumper)
	}

	if p.Opts.EnableDenoisePost {
		if err := advance("denoise"); err != nil {
			return "", err
		}
		mask = denoise(mask)
		dumper.Binary("denoised.pbm", mask)
	}

	if err := advance("find components"); err != nil {
		return "", err
	}
	_, set := components.Extract(mask, components.Connectivity(p.Opts.Connectivity))
	components.SmallFilter(set, p.Opts.MinComponentPixels)
	if vsep != nil {
		set.AddSeparators(vsep)
	}

	if err := advance("link objects"); err != nil {
		return "", err
	}
	left := linking.Left(set, p.Opts.LinkAlpha)
	right := linking.Right(set, p.Opts.LinkAlpha)
	merged := linking.MergeDoubleLink(left, right)
	dumper.RGB("object_links.ppm", debugdump.LinkOverlay(gray, set, merged))

	if err := advance("filter"); err != nil {
		return "", err
	}
	filtered := linking.HeightRatioFilter(set, merged, p.Opts.HRatioThreshold)
	dumper.RGB("hratio_links_decision_image.ppm", debugdump.LinkOverlay(gray, set, filtered))
	groups := linking.Group(filtered)

	if err := advance("rebuild lines"); err != nil {
		return "", err
	}
	ls := lines.Build(set, groups)
	isText := func(l lines.LineInfo) bool { return l.Tag == lines.TagText }
	dumper.RGB("step1_bboxes.ppm", debugdump.BBoxOverlay(gray, debugdump.BBoxesOf(ls, isText), raster.RGB{R: 255}, 0))
	dumper.RGB("step1_bboxes_enlarged.ppm", debugdump.BBoxOverlay(gray, debugdump.BBoxesOf(ls, isText), raster.RGB{R: 255}, 2))
	dumper.RGB("step1_looks_like_a_text_line.ppm", debugdump.LooksLikeTextLineOverlay(gray, ls))
	dumper.RGB("step1_x_height.ppm", debugdump.XHeightOverlay(gray, ls))

	lines.Merge(ls, lines.MergeConfig{
		BaselineFactor:  p.Opts.MergeBaselineFactor,
		XHeightRatioMin: p.Opts.MergeXHeightRatioMin,
		XHeightRatioMax: p.Opts.MergeXHeightRatioMax,
		GapFactor:       p.Opts.MergeGapFactor,
	})
	lines.TagPathologies(ls)
	dumper.RGB("step2_bboxes.ppm", debugdump.BBoxOverlay(gray, debugdump.BBoxesOf(ls, isText), raster.RGB{R: 255}, 0))
	dumper.RGB("step2_bboxes_enlarged.ppm", debugdump.BBoxOverlay(gray, debugdump.BBoxesOf(ls, isText), raster.RGB{R: 255}, 2))
	dumper.RGB("step2_looks_like_a_text_line.ppm", debugdump.LooksLikeTextLineOverlay(gray, ls))
	dumper.RGB("step2_x_height.ppm", debugdump.XHeightOverlay(gray, ls))
	dumper.LineTable("step2_bboxes_100p.txt", ls)

	if err := advance("recognize text"); err != nil {
		return "", err
	}
	recognizer := p.Recognizer
	if recognizer == nil {
		recognizer = ocr.New()
	}
	lang, err := ocr.CanonicalLanguage(p.Opts.OCRLanguage)
	if err != nil {
		return "", newError(KindOCRBackendError, "recognize text", err)
	}

	text, err := recognizeLines(ctx, recognizer, mask, ls, lang)
	if err != nil {
		return "", newError(KindOCRBackendError, "recognize text", err)
	}

	return plausibility.Filter(text, p.Opts.PlausibilityLetterRatio, p.Opts.PlausibilityWhitespaceRatio), nil
}

func (p *Pipeline) extractSeparators(mask *raster.Binary, dumper *debugdump.Dumper) (woSeparators, combined *raster.Binary) {
	var vmask, wmask *raster.Binary
	if p.Opts.EnableLineSeps {
		vmask = separators.Vertical(mask, p.Opts.VSeparatorLength)
		dumper.Binary("vseparators.pbm", vmask)
	}
	if p.Opts.EnableWhitespaceSeps {
		wmask = separators.Whitespace(mask)
		dumper.Binary("whitespaces.pbm", wmask)
	}

	rows, cols := mask.Rows(), mask.Cols()
	combined = raster.NewImage2D[bool](rows, cols)
	woSeparators = raster.NewImage2D[bool](rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			isSep := (vmask != nil && vmask.AtUnsafe(r, c)) || (wmask != nil && wmask.AtUnsafe(r, c))
			if isSep {
				combined.SetUnsafe(r, c, true)
			}
			if mask.AtUnsafe(r, c) && !isSep {
				woSeparators.SetUnsafe(r, c, true)
			}
		}
	}
	dumper.Binary("all_separators.pbm", combined)
	dumper.Binary("input_wo_vseparators.pbm", woSeparators)
	return woSeparators, combined
}

// recognizeLines runs the recognizer over every surviving text line's
// bbox-clipped mask, in reading order (top-to-bottom by baseline), and
// joins the results with newlines.
func recognizeLines(ctx context.Context, r ocr.Recognizer, mask *raster.Binary, ls *lines.LineSet, lang string) (string, error) {
	nonIgnored := ls.NonIgnored()
	sort.Slice(nonIgnored, func(i, j int) bool { return nonIgnored[i].Baseline < nonIgnored[j].Baseline })

	var out []byte
	for i, l := range nonIgnored {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		clip := ocr.Clip(mask, l.BBox.PMin.Row, l.BBox.PMin.Col, l.BBox.PMax.Row, l.BBox.PMax.Col)
		text, err := r.Recognize(ctx, clip, lang)
		if err != nil {
			return "", err
		}
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, text...)
	}
	return string(out), nil
}
