package checker

import (
	"context"
	"fmt"
	"log"

	"github.com/ironsheep/vegan-check-mcp/internal/classify"
	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
	"github.com/ironsheep/vegan-check-mcp/internal/imaging"
	"github.com/ironsheep/vegan-check-mcp/internal/ocr"
	"github.com/ironsheep/vegan-check-mcp/internal/reference"
)

// Pipeline wires preprocessing, OCR, extraction and classification together.
// It holds no per-submission state and is safe for concurrent use.
type Pipeline struct {
	Table     *reference.Table
	Extractor enumber.Extractor

	// OCR creates the engine for each image. A nil OCR makes every image
	// read fail with ocr.ErrNotAvailable.
	OCR ocr.Factory

	// Debug enables per-step logging to the standard logger.
	Debug bool
}

// Reading is the text recovered from one image.
type Reading struct {
	Text     string                  `json:"text"`
	Width    int                     `json:"width"`
	Height   int                     `json:"height"`
	Stats    imaging.Stats           `json:"stats"`
	Contrast *imaging.ContrastResult `json:"contrast"`
}

// Report is the outcome of checking one input.
type Report struct {
	Source  enumber.Channel `json:"source"`
	Text    string          `json:"text"`
	Codes   enumber.Set     `json:"codes"`
	Result  classify.Result `json:"result"`
	Reading *Reading        `json:"reading,omitempty"`
}

// Extract returns the codes in text using the mode configured for src.
func (p *Pipeline) Extract(text string, src enumber.Channel) enumber.Set {
	return p.Extractor.Extract(text, src)
}

// ReadImage preprocesses an uploaded image, cropped to sel, and recognizes
// its text. The decoded and processed images are dropped before ReadImage
// returns.
func (p *Pipeline) ReadImage(ctx context.Context, data []byte, sel imaging.Selection) (*Reading, error) {
	if p.OCR == nil {
		return nil, fmt.Errorf("%w: no OCR backend configured", ocr.ErrNotAvailable)
	}

	prep, err := imaging.Prepare(data, sel)
	if err != nil {
		return nil, err
	}
	p.debugf("Preprocessed %dx%d -> %dx%d, ink %.3f",
		prep.Processed.SourceWidth, prep.Processed.SourceHeight,
		prep.Processed.Width, prep.Processed.Height, prep.Processed.Stats.InkCoverage)

	text, err := ocr.Recognize(ctx, p.OCR, prep.JPEG)
	if err != nil {
		p.debugf("OCR failed: %v", err)
		return nil, err
	}
	p.debugf("OCR returned %d bytes", len(text))

	return &Reading{
		Text:     text,
		Width:    prep.Processed.Width,
		Height:   prep.Processed.Height,
		Stats:    prep.Processed.Stats,
		Contrast: prep.Contrast,
	}, nil
}

// Classify checks text from src. An empty extraction fails with a
// *NoCodesFoundError naming src.
func (p *Pipeline) Classify(text string, src enumber.Channel) (*Report, error) {
	codes := p.Extract(text, src)
	if codes.Len() == 0 {
		return nil, &NoCodesFoundError{Source: src}
	}
	return &Report{
		Source: src,
		Text:   text,
		Codes:  codes,
		Result: classify.Classify(codes, p.Table),
	}, nil
}

// CheckText classifies typed ingredient text.
func (p *Pipeline) CheckText(text string) (*Report, error) {
	return p.Classify(text, enumber.ChannelText)
}

// CheckImage reads an ingredient label photo and classifies its text.
func (p *Pipeline) CheckImage(ctx context.Context, data []byte, sel imaging.Selection) (*Report, error) {
	reading, err := p.ReadImage(ctx, data, sel)
	if err != nil {
		return nil, err
	}
	report, err := p.Classify(reading.Text, enumber.ChannelImage)
	if err != nil {
		return nil, err
	}
	report.Reading = reading
	return report, nil
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.Debug {
		log.Printf(format, args...)
	}
}
