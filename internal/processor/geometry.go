package processor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
)

var shadowFill = imaging.MustParseColor("#6B696A")

// Empty leaves the working image untouched.
type Empty struct{}

func (Empty) ID() string { return EmptyID }

// Process does nothing.
func (Empty) Process(*container.Container) error { return nil }

// Shadow frames the image with a soft shadow whose thickness is proportional
// to the longest side.
type Shadow struct{}

func (Shadow) ID() string { return ShadowID }

// Process grows the image by 2*max(w,h)/512 pixels per side.
func (Shadow) Process(c *container.Container) error {
	img := c.Image()
	w, h := c.Width(), c.Height()
	radius := max(w, h) / 512

	shadow := imaging.Fill(w, h, shadowFill)
	shadow = imaging.Pad(shadow, imaging.Uniform(2*radius), imaging.White)
	shadow = imaging.Blur(shadow, float64(radius))
	imaging.Paste(shadow, img, image.Pt(radius, radius))

	c.Update(shadow)
	return nil
}

// Square pads the image with white to a 1:1 aspect ratio.
type Square struct{}

func (Square) ID() string { return SquareID }

// Process pads the shorter side up to the longer one.
func (Square) Process(c *container.Container) error {
	c.Update(imaging.Square(c.Image(), imaging.White))
	return nil
}

// marginSize is percent of the shorter image side, truncated.
func marginSize(c *container.Container, percent int) int {
	return percent * min(c.Width(), c.Height()) / 100
}

// Margin adds a solid border on the top, left and right, leaving the bottom
// for a band appended by an earlier stage.
type Margin struct {
	// Percent is the border thickness as a percentage of the shorter side.
	Percent int
	Color   color.Color
}

func (Margin) ID() string { return MarginID }

// Process grows the width by 2p and the height by p, where p is Percent of
// the shorter side.
func (m Margin) Process(c *container.Container) error {
	if m.Color == nil {
		return fmt.Errorf("%w: margin has no color", ErrUnconfigured)
	}
	p := marginSize(c, m.Percent)
	c.Update(imaging.Pad(c.Image(), imaging.Sides(p, "tlr"), m.Color))
	return nil
}

// PureWhiteMargin adds a white border on all four sides.
type PureWhiteMargin struct {
	Percent int
}

func (PureWhiteMargin) ID() string { return PureWhiteMarginID }

// Process grows both dimensions by twice Percent of the shorter side.
func (m PureWhiteMargin) Process(c *container.Container) error {
	p := marginSize(c, m.Percent)
	c.Update(imaging.Pad(c.Image(), imaging.Uniform(p), imaging.White))
	return nil
}

// PaddingToOriginalRatio pads the image with white until its aspect ratio
// matches the source photo again. Padding is split evenly between the two
// sides of the padded dimension.
type PaddingToOriginalRatio struct{}

func (PaddingToOriginalRatio) ID() string { return PaddingToOriginalRatioID }

// Process grows one dimension only. It fails with ErrGeometry when the ratio
// could only be restored by cropping.
func (PaddingToOriginalRatio) Process(c *container.Container) error {
	original, current := c.OriginalRatio(), c.Ratio()
	if original <= 0 || current <= 0 {
		return fmt.Errorf("%w: ratio %.4f, original ratio %.4f", ErrGeometry, current, original)
	}

	w, h := c.Width(), c.Height()
	var in imaging.Insets
	var pad int
	if original > current {
		// Too tall for the original ratio: widen.
		pad = int(math.Round(float64(h)*original)) - w
		in.Left, in.Right = pad/2, pad-pad/2
	} else {
		// Too wide: heighten.
		pad = int(math.Round(float64(w)/original)) - h
		in.Top, in.Bottom = pad/2, pad-pad/2
	}
	if pad < 0 {
		return fmt.Errorf("%w: negative padding %d", ErrGeometry, pad)
	}

	c.Update(imaging.Pad(c.Image(), in, imaging.White))
	return nil
}
