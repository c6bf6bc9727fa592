package imaging

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// contrastGrid is the number of samples taken along each axis.
	contrastGrid = 64

	// lowContrastSpread is the lightness spread below which a photo is
	// likely to binarize into a blank page or a solid block.
	lowContrastSpread = 0.25
)

// ContrastResult describes the lightness of a source photo.
type ContrastResult struct {
	// MeanColor is the average sampled color, as "#rrggbb".
	MeanColor string `json:"mean_color"`

	// MeanLightness is the average HSL lightness, in [0,1].
	MeanLightness float64 `json:"mean_lightness"`

	// LightnessSpread is the standard deviation of lightness, in [0,0.5].
	LightnessSpread float64 `json:"lightness_spread"`

	// LowContrast flags images whose text will probably not survive
	// binarization.
	LowContrast bool `json:"low_contrast"`

	// Samples is the number of opaque pixels measured.
	Samples int `json:"samples"`
}

// AnalyzeContrast samples img on a regular grid and reports its lightness.
//
// Fully transparent pixels are skipped. An image with nothing to sample
// reports LowContrast.
func AnalyzeContrast(img image.Image) *ContrastResult {
	bounds := img.Bounds()
	stepX := max(1, bounds.Dx()/contrastGrid)
	stepY := max(1, bounds.Dy()/contrastGrid)

	var sum colorful.Color
	var lights []float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			sum.R += c.R
			sum.G += c.G
			sum.B += c.B
			_, _, l := c.Hsl()
			lights = append(lights, l)
		}
	}

	n := len(lights)
	if n == 0 {
		return &ContrastResult{MeanColor: "#000000", LowContrast: true}
	}

	mean := colorful.Color{R: sum.R / float64(n), G: sum.G / float64(n), B: sum.B / float64(n)}

	var lsum float64
	for _, l := range lights {
		lsum += l
	}
	lmean := lsum / float64(n)

	var variance float64
	for _, l := range lights {
		variance += (l - lmean) * (l - lmean)
	}
	spread := math.Sqrt(variance / float64(n))

	return &ContrastResult{
		MeanColor:       mean.Clamped().Hex(),
		MeanLightness:   lmean,
		LightnessSpread: spread,
		LowContrast:     spread < lowContrastSpread,
		Samples:         n,
	}
}
