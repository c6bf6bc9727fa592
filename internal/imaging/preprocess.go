package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	// MaxDimension bounds the longer side of a processed image, in pixels.
	MaxDimension = 1600

	// Threshold is the channel mean above which a pixel becomes white.
	Threshold = 128

	// JPEGQuality is the quality used when encoding processed images.
	JPEGQuality = 90
)

// Processed is a binarized image ready for OCR.
//
// Every pixel of Image has R == G == B and that value is either 0 or 255.
// A Processed value is never modified after Preprocess returns it.
type Processed struct {
	// Image holds the binarized pixels, with bounds starting at (0,0).
	Image *image.NRGBA

	// Width and Height are the processed dimensions.
	Width  int
	Height int

	// SourceWidth and SourceHeight are the dimensions before scaling.
	SourceWidth  int
	SourceHeight int

	// Stats describes the pixel distribution of Image.
	Stats Stats
}

// TargetSize returns the dimensions an image of w x h is scaled to.
//
// When width is the longer side and exceeds MaxDimension, it becomes
// MaxDimension and height scales proportionally; otherwise, when height
// exceeds MaxDimension, height becomes MaxDimension and width scales.
// Images within the bound are unchanged. Scaled sides are truncated to whole
// pixels and never drop below 1.
func TargetSize(w, h int) (int, int) {
	if w > h && w > MaxDimension {
		h = h * MaxDimension / w
		w = MaxDimension
	} else if h > MaxDimension {
		w = w * MaxDimension / h
		h = MaxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Preprocess scales, flattens and binarizes img for OCR.
//
// The source image is not modified. See the package documentation for the
// exact steps.
//
// Returns ErrSurfaceUnavailable if img has empty bounds.
func Preprocess(img image.Image) (*Processed, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels (%dx%d)", ErrSurfaceUnavailable, bounds.Dx(), bounds.Dy())
	}

	w, h := TargetSize(bounds.Dx(), bounds.Dy())

	var src image.Image = img
	if w != bounds.Dx() || h != bounds.Dy() {
		src = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	canvas := imaging.New(w, h, color.White)
	if canvas.Bounds().Dx() != w || canvas.Bounds().Dy() != h {
		return nil, fmt.Errorf("%w: could not allocate %dx%d canvas", ErrSurfaceUnavailable, w, h)
	}
	canvas = imaging.Overlay(canvas, src, image.Pt(0, 0), 1.0)

	out := Binarize(canvas)
	return &Processed{
		Image:        out,
		Width:        w,
		Height:       h,
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
		Stats:        ComputeStats(out),
	}, nil
}

// Binarize maps each pixel to pure white when the mean of its R, G and B
// channels exceeds Threshold, and to pure black otherwise.
//
// Channels are compared on their straight (non-premultiplied) values and the
// alpha channel is copied unchanged. The result has bounds starting at (0,0).
func Binarize(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		var v uint8
		if int(c.R)+int(c.G)+int(c.B) > 3*Threshold {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

// EncodeJPEG encodes a processed image for transport to the OCR engine.
func EncodeJPEG(p *Processed) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, p.Image, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("%w: failed to encode processed image: %v", ErrSurfaceUnavailable, err)
	}
	return buf.Bytes(), nil
}

// EncodedImage is an image serialized for JSON responses.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// NewEncodedImage wraps an encoded JPEG blob.
func NewEncodedImage(p *Processed, jpeg []byte) *EncodedImage {
	return &EncodedImage{
		Width:       p.Width,
		Height:      p.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(jpeg),
		MimeType:    "image/jpeg",
	}
}

// Prepared bundles everything produced while readying an upload for OCR.
type Prepared struct {
	Processed *Processed
	JPEG      []byte
	Contrast  *ContrastResult
}

// Prepare decodes data, crops it to sel, and runs Preprocess and
// EncodeJPEG. The decoded source is dropped before Prepare returns.
func Prepare(data []byte, sel Selection) (*Prepared, error) {
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	if img, err = sel.Apply(img); err != nil {
		return nil, err
	}

	contrast := AnalyzeContrast(img)

	processed, err := Preprocess(img)
	if err != nil {
		return nil, err
	}
	blob, err := EncodeJPEG(processed)
	if err != nil {
		return nil, err
	}
	return &Prepared{Processed: processed, JPEG: blob, Contrast: contrast}, nil
}
