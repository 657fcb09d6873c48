//go:build gosseract

package ocr

// New returns the default recognizer for this build: the gosseract tag
// wires in a real Tesseract-backed recognizer.
func New() Recognizer { return NewTesseractRecognizer() }
