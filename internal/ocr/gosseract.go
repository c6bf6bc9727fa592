//go:build gosseract

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine recognizes text through libtesseract.
type GosseractEngine struct {
	client *gosseract.Client
}

// NewGosseractFactory returns a factory of engines backed by a new
// gosseract client each.
func NewGosseractFactory(o Options) (Factory, error) {
	o = o.withDefaults()
	return func() (Engine, error) {
		client := gosseract.NewClient()
		if err := client.SetLanguage(o.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: failed to set language: %w", ErrEngine, err)
		}
		if err := client.SetPageSegMode(gosseract.PageSegMode(o.PageSegMode)); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: failed to set page segmentation mode: %w", ErrEngine, err)
		}
		return &GosseractEngine{client: client}, nil
	}, nil
}

// Recognize implements Engine. The call is not interruptible once started;
// ctx is only checked before it begins.
func (e *GosseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEngine, err)
	}
	if err := e.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("%w: failed to set image: %w", ErrEngine, err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: OCR failed: %w", ErrEngine, err)
	}
	return text, nil
}

// Close implements Engine.
func (e *GosseractEngine) Close() error {
	return e.client.Close()
}

func gosseractVersion() (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version(), nil
}
