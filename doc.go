// Package scribo extracts machine-readable text from document images.
//
// An input raster (a photograph or scan of a printed page) is converted to
// grayscale, binarized with a multi-scale Sauvola threshold, segmented into
// connected components, grouped into text lines by a geometric link-and-merge
// pass, and finally handed line-by-line to an OCR backend. Output that looks
// like noise rather than writing — measured by a letter/whitespace ratio — is
// reported as an empty string rather than garbage.
//
// The package is organized the way it is used:
//
//	ExtractText(ctx, imageBytes, opts) -> (string, error) // one-shot, synchronous
//	job.New(uri, opts).Run(ctx)    -> (string, error)   // download + temp-file wrapper
//
// Internally the pipeline is a strict left-to-right sequence of stages
// (grayscale, binarize, extract separators, extract components, link objects,
// build lines, merge lines, recognize, filter) with no stage reading state
// produced after its own. See Pipeline for stage-level progress reporting.
package scribo
