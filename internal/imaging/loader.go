package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

var (
	// ErrImageDecode is returned when a source image cannot be loaded or decoded.
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrSurfaceUnavailable is returned when no drawing surface can be
	// produced for an image.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
)

// Decode reads an encoded image from r.
//
// JPEG, PNG, GIF, BMP, TIFF and WebP are supported. EXIF orientation is
// applied, so phone photos taken sideways come out upright before they are
// measured and scaled.
//
// Returns an error wrapping ErrImageDecode if r cannot be read or holds no
// decodable image.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image blob.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrImageDecode)
	}
	return Decode(bytes.NewReader(data))
}

// ReadFile returns the raw bytes of an image file.
//
// The file is not decoded; a missing or unreadable file still reports
// ErrImageDecode so callers handle every load failure the same way.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image: %v", ErrImageDecode, err)
	}
	return data, nil
}

// ImageInfo contains metadata about an uploaded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	// Detection is based on the content, not on a file name.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the color model carries transparency.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the encoded payload.
	SizeBytes int `json:"size_bytes"`

	// NeedsResize reports whether Preprocess will scale the image down.
	NeedsResize bool `json:"needs_resize"`
}

// Inspect reads the header of an encoded image without decoding its pixels.
//
// Width and Height are the stored dimensions; EXIF orientation is not
// applied here.
func Inspect(data []byte) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch cfg.ColorModel {
	case color.RGBAModel, color.NRGBAModel, color.AlphaModel:
		hasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		hasAlpha = true
		colorDepth = "16-bit"
	case color.Gray16Model:
		colorDepth = "16-bit"
	}
	if _, ok := cfg.ColorModel.(color.Palette); ok {
		// GIF and paletted PNG may carry a transparent index.
		hasAlpha = true
	}

	w, h := TargetSize(cfg.Width, cfg.Height)
	return &ImageInfo{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      format,
		ColorDepth:  colorDepth,
		HasAlpha:    hasAlpha,
		SizeBytes:   len(data),
		NeedsResize: w != cfg.Width || h != cfg.Height,
	}, nil
}
