package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultGuideSpacing is the grid spacing used when none is given.
const DefaultGuideSpacing = 100

// GuideResult is a source photo overlaid with a labeled coordinate grid.
type GuideResult struct {
	EncodedImage
	GridSpacing int `json:"grid_spacing"`
}

// RegionGuide draws a coordinate grid over img so a caller can read off the
// pixel region that holds the ingredient list and pass it to CropRegion.
//
// The grid color is a "#rrggbb" string; an unparsable value falls back to
// red. Lines are drawn at 50% opacity. The result is PNG encoded so thin
// lines survive.
func RegionGuide(img image.Image, spacing int, showCoordinates bool, gridColorHex string) (*GuideResult, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive, got %d", spacing)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrSurfaceUnavailable)
	}
	width := bounds.Dx()
	height := bounds.Dy()

	gridColor := color.NRGBA{R: 255, A: 128}
	if c, err := colorful.Hex(gridColorHex); err == nil {
		r, g, b := c.RGB255()
		gridColor = color.NRGBA{R: r, G: g, B: b, A: 128}
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)
	line := image.NewUniform(gridColor)

	for x := spacing; x < width; x += spacing {
		draw.Draw(result, image.Rect(x, 0, x+1, height), line, image.Point{}, draw.Over)
	}
	for y := spacing; y < height; y += spacing {
		draw.Draw(result, image.Rect(0, y, width, y+1), line, image.Point{}, draw.Over)
	}

	if showCoordinates {
		for y := spacing; y < height; y += spacing {
			for x := spacing; x < width; x += spacing {
				drawLabel(result, x+2, y+2, fmt.Sprintf("%d,%d", x, y))
			}
		}
	}

	enc, err := encodePNG(result)
	if err != nil {
		return nil, err
	}
	return &GuideResult{
		EncodedImage: EncodedImage{
			Width:       width,
			Height:      height,
			ImageBase64: enc,
			MimeType:    "image/png",
		},
		GridSpacing: spacing,
	}, nil
}

// drawLabel writes white text on a translucent black box whose top-left
// corner is at (x,y).
func drawLabel(dst *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()

	box := image.Rect(x-1, y-1, x+w+1, y+h)
	draw.Draw(dst, box, image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("%w: failed to encode image: %v", ErrSurfaceUnavailable, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
