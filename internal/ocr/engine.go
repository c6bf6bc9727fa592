package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEngine is wrapped by every recognition failure.
	ErrEngine = errors.New("OCR engine failed")

	// ErrNotAvailable is returned when a backend cannot run on this host.
	ErrNotAvailable = errors.New("OCR backend not available")
)

// Backend names accepted by NewFactory.
const (
	BackendCLI       = "cli"
	BackendGosseract = "gosseract"
)

// Engine recognizes text in an encoded image.
//
// An Engine is owned by a single caller for a single image and must be
// closed once recognition is done.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// Factory creates a fresh Engine.
type Factory func() (Engine, error)

// Options configures a backend.
type Options struct {
	// Backend is BackendCLI or BackendGosseract. Empty means BackendCLI.
	Backend string

	// Binary is the tesseract executable used by the CLI backend.
	Binary string

	// Language is a Tesseract language code such as "eng".
	Language string

	// PageSegMode is Tesseract's --psm value.
	PageSegMode int
}

// DefaultOptions returns the CLI backend reading English.
func DefaultOptions() Options {
	return Options{
		Backend:     BackendCLI,
		Binary:      "tesseract",
		Language:    "eng",
		PageSegMode: 3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Backend == "" {
		o.Backend = d.Backend
	}
	if o.Binary == "" {
		o.Binary = d.Binary
	}
	if o.Language == "" {
		o.Language = d.Language
	}
	if o.PageSegMode <= 0 {
		o.PageSegMode = d.PageSegMode
	}
	return o
}

// NewFactory returns the factory for o.Backend.
//
// Returns an error wrapping ErrNotAvailable if the backend is unknown or
// cannot run on this host.
func NewFactory(o Options) (Factory, error) {
	o = o.withDefaults()
	switch o.Backend {
	case BackendCLI:
		return NewCommandFactory(o)
	case BackendGosseract:
		return NewGosseractFactory(o)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrNotAvailable, o.Backend)
	}
}

// Recognize runs one recognition with a freshly acquired engine.
//
// The engine is created immediately before use and closed before Recognize
// returns, whether recognition succeeded or not. A context that is already
// done aborts before an engine is created. Surrounding whitespace is trimmed
// from the result.
func Recognize(ctx context.Context, factory Factory, image []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEngine, err)
	}

	engine, err := factory()
	if err != nil {
		if errors.Is(err, ErrEngine) {
			return "", err
		}
		return "", fmt.Errorf("%w: failed to initialize: %w", ErrEngine, err)
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil && err == nil {
			text = ""
			err = fmt.Errorf("%w: failed to terminate: %w", ErrEngine, cerr)
		}
	}()

	text, err = engine.Recognize(ctx, image)
	if err != nil {
		if errors.Is(err, ErrEngine) {
			return "", err
		}
		return "", fmt.Errorf("%w: recognition failed: %w", ErrEngine, err)
	}
	return strings.TrimSpace(text), nil
}
