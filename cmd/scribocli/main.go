// Command scribocli extracts text from a document image from the command
// line.
//
// Usage:
//
//	scribocli [options] <input>   file path or http(s) URL; use "-" for stdin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/deepteams/scribo"
	"github.com/deepteams/scribo/internal/ocr"
	"github.com/deepteams/scribo/job"
)

// Exit codes per spec.md §6.
const (
	exitSuccess          = 0
	exitInvalidArguments = 2
	exitUnreadableInput  = 3
	exitOCRUnavailable   = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("scribocli", flag.ContinueOnError)
	lang := fs.String("lang", "eng", "OCR language tag forwarded to the recognizer")
	debugDir := fs.String("debug-dir", "", "directory to write stage debug artifacts into")
	algo := fs.String("binarize", "sauvola_ms", "binarization algorithm: convert, sauvola, sauvola_ms")
	noLineSeps := fs.Bool("no-line-seps", false, "disable ruled-line separator detection")
	noWhitespaceSeps := fs.Bool("no-whitespace-seps", false, "disable whitespace-gutter separator detection")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scribocli [options] <input>\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitInvalidArguments
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitInvalidArguments
	}

	opts := scribo.DefaultOptions()
	opts.OCRLanguage = *lang
	opts.DebugDir = *debugDir
	opts.EnableLineSeps = !*noLineSeps
	opts.EnableWhitespaceSeps = !*noWhitespaceSeps
	switch *algo {
	case "convert":
		opts.BinarizationAlgo = scribo.AlgoConvert
	case "sauvola":
		opts.BinarizationAlgo = scribo.AlgoSauvola
	case "sauvola_ms":
		opts.BinarizationAlgo = scribo.AlgoSauvolaMs
	default:
		fmt.Fprintf(os.Stderr, "scribocli: unknown -binarize value %q\n", *algo)
		return exitInvalidArguments
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "scribocli: %v\n", err)
		return exitInvalidArguments
	}

	text, err := extract(fs.Arg(0), opts)
	if err != nil {
		var scribeErr *scribo.Error
		if errors.As(err, &scribeErr) && scribeErr.Kind == scribo.KindDegenerateOutput {
			// Non-fatal per spec.md §7: print the (empty) text and exit
			// clean rather than treating it as unreadable input.
			fmt.Println(text)
			return exitSuccess
		}
		return exitForError(err)
	}
	fmt.Println(text)
	return exitSuccess
}

func extract(input string, opts scribo.Options) (string, error) {
	ctx := context.Background()
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("scribocli: read stdin: %w", err)
		}
		return scribo.ExtractText(ctx, data, opts)
	}
	return job.New(input, opts).Run(ctx)
}

func exitForError(err error) int {
	var scribeErr *scribo.Error
	if errors.As(err, &scribeErr) {
		switch scribeErr.Kind {
		case scribo.KindInvalidImage, scribo.KindUnsupportedFormat:
			fmt.Fprintf(os.Stderr, "scribocli: %v\n", err)
			return exitUnreadableInput
		case scribo.KindOCRBackendError:
			fmt.Fprintf(os.Stderr, "scribocli: %v\n", err)
			return exitOCRUnavailable
		}
	}
	if errors.Is(err, ocr.ErrBackendUnavailable) {
		fmt.Fprintf(os.Stderr, "scribocli: %v\n", err)
		return exitOCRUnavailable
	}
	fmt.Fprintf(os.Stderr, "scribocli: %v\n", err)
	return exitUnreadableInput
}
