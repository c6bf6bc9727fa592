//go:build !gosseract

package ocr

import "fmt"

// NewGosseractFactory reports ErrNotAvailable: this binary was built
// without libtesseract. Rebuild with -tags gosseract to enable it.
func NewGosseractFactory(o Options) (Factory, error) {
	return nil, fmt.Errorf("%w: built without the gosseract tag", ErrNotAvailable)
}

func gosseractVersion() (string, error) {
	return "", fmt.Errorf("%w: built without the gosseract tag", ErrNotAvailable)
}
