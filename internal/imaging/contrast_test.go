package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestAnalyzeContrast_Solid(t *testing.T) {
	r := AnalyzeContrast(createInMemoryImage(50, 50, color.RGBA{255, 255, 255, 255}))

	if r.MeanColor != "#ffffff" {
		t.Errorf("MeanColor: got %s, want #ffffff", r.MeanColor)
	}
	if r.MeanLightness < 0.99 {
		t.Errorf("MeanLightness: got %f, want 1", r.MeanLightness)
	}
	if !r.LowContrast {
		t.Error("LowContrast: got false for a blank image")
	}
	if r.Samples != 2500 {
		t.Errorf("Samples: got %d, want 2500", r.Samples)
	}
}

func TestAnalyzeContrast_HighContrast(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if (x/4)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	r := AnalyzeContrast(img)
	if r.LowContrast {
		t.Errorf("LowContrast: got true, spread %f", r.LightnessSpread)
	}
	if r.LightnessSpread < 0.4 {
		t.Errorf("LightnessSpread: got %f, want about 0.5", r.LightnessSpread)
	}
}

func TestAnalyzeContrast_SamplesLargeImagesSparsely(t *testing.T) {
	r := AnalyzeContrast(createInMemoryImage(640, 640, color.Gray{40}))
	if r.Samples != contrastGrid*contrastGrid {
		t.Errorf("Samples: got %d, want %d", r.Samples, contrastGrid*contrastGrid)
	}
}

func TestAnalyzeContrast_Transparent(t *testing.T) {
	r := AnalyzeContrast(image.NewNRGBA(image.Rect(0, 0, 10, 10)))
	if r.Samples != 0 || !r.LowContrast {
		t.Errorf("got %+v, want no samples and LowContrast", r)
	}
}
