package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidRegion is returned when a crop region cannot be applied.
var ErrInvalidRegion = errors.New("invalid crop region")

// Region is a rectangle in image pixel coordinates.
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Validate checks that r is non-empty and fits inside bounds.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			ErrInvalidRegion, r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("%w: x1 must be < x2, y1 must be < y2", ErrInvalidRegion)
	}
	return nil
}

// CropRegion returns the part of img inside r.
// The result has bounds starting at (0,0).
func CropRegion(img image.Image, r Region) (*image.NRGBA, error) {
	if err := r.Validate(img.Bounds()); err != nil {
		return nil, err
	}
	return imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2)), nil
}

// NamedRegion resolves a label-friendly region name against an image of
// the given size. Ingredient lists usually sit in one part of a package
// photo, so these names save callers from computing pixel coordinates.
func NamedRegion(name string, w, h int) (Region, error) {
	midX := w / 2
	midY := h / 2

	switch name {
	case "full", "":
		return Region{0, 0, w, h}, nil
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, w, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, h}, nil
	case "bottom-right":
		return Region{midX, midY, w, h}, nil
	case "top-half":
		return Region{0, 0, w, midY}, nil
	case "bottom-half":
		return Region{0, midY, w, h}, nil
	case "left-half":
		return Region{0, 0, midX, h}, nil
	case "right-half":
		return Region{midX, 0, w, h}, nil
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		return Region{qW, qH, w - qW, h - qH}, nil
	default:
		return Region{}, fmt.Errorf("%w: unknown region name %q", ErrInvalidRegion, name)
	}
}

// Selection picks the part of an image to read. The zero value selects the
// whole image.
type Selection struct {
	// Region, when set, is used as is.
	Region *Region
	// Name is a NamedRegion name, resolved against the decoded image.
	Name string
}

// IsZero reports whether sel selects the whole image.
func (sel Selection) IsZero() bool {
	return sel.Region == nil && (sel.Name == "" || sel.Name == "full")
}

// Apply crops img to sel. Named regions are resolved after EXIF orientation
// has been applied, so they match what the user sees.
func (sel Selection) Apply(img image.Image) (image.Image, error) {
	if sel.IsZero() {
		return img, nil
	}
	r := sel.Region
	if r == nil {
		named, err := NamedRegion(sel.Name, img.Bounds().Dx(), img.Bounds().Dy())
		if err != nil {
			return nil, err
		}
		b := img.Bounds().Min
		named = Region{named.X1 + b.X, named.Y1 + b.Y, named.X2 + b.X, named.Y2 + b.Y}
		r = &named
	}
	return CropRegion(img, *r)
}
