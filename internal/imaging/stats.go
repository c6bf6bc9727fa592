package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// Stats summarizes the tonal distribution of an image.
type Stats struct {
	// InkCoverage is the fraction of pixels whose red channel is 0, in [0,1].
	// For a binarized image this is the share of black pixels.
	InkCoverage float64 `json:"ink_coverage"`

	// Levels is the number of distinct red channel values present.
	Levels int `json:"levels"`

	// Binary reports whether every channel uses only the values 0 and 255.
	Binary bool `json:"binary"`
}

// ComputeStats builds per-channel histograms of img and summarizes them.
// An image with no pixels yields the zero Stats.
func ComputeStats(img image.Image) Stats {
	total := img.Bounds().Dx() * img.Bounds().Dy()
	if total <= 0 {
		return Stats{}
	}

	h := histogram.NewRGBAHistogram(img)

	levels := 0
	for _, n := range h.R.Bins {
		if n > 0 {
			levels++
		}
	}

	return Stats{
		InkCoverage: float64(h.R.Bins[0]) / float64(total),
		Levels:      levels,
		Binary:      onlyExtremes(h.R) && onlyExtremes(h.G) && onlyExtremes(h.B),
	}
}

func onlyExtremes(h histogram.Histogram) bool {
	for i := 1; i < len(h.Bins)-1; i++ {
		if h.Bins[i] > 0 {
			return false
		}
	}
	return true
}
