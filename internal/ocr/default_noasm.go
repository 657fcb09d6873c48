//go:build !gosseract

package ocr

// New returns the default recognizer for this build: without the gosseract
// tag, that's the pure-Go stub, so the module links without a system
// Tesseract install; every Recognize call then fails with
// ErrBackendUnavailable.
func New() Recognizer { return NewStubRecognizer() }
