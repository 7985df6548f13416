package processor

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/text"
)

var (
	simpleDark  = imaging.MustParseColor("#212121")
	simpleRed   = imaging.MustParseColor("#D32F2F")
	simpleLight = imaging.MustParseColor("#9E9E9E")
)

// Simple draws a centered two-line caption, "Shot on <model> <make>" over the
// capture parameters, onto the bottom of the photo.
type Simple struct {
	text TextRenderer
}

// NewSimple returns a caption stage drawing with the alternative fonts of tr.
func NewSimple(tr TextRenderer) *Simple {
	return &Simple{text: tr}
}

func (*Simple) ID() string { return SimpleID }

// SimpleRatios returns the caption region height as a fraction of the image
// height, and the share of that region the caption itself fills.
func SimpleRatios(aspect float64) (ratio, padding float64) {
	if aspect >= 1 {
		return .16, .5
	}
	return .1, .5
}

// Process keeps the image size; the caption is drawn over the bottom pixels.
func (s *Simple) Process(c *container.Container) error {
	if s.text == nil {
		return ErrUnconfigured
	}

	caption, err := s.caption(c)
	if err != nil {
		return err
	}

	w, h := c.Width(), c.Height()
	ratio, padding := SimpleRatios(c.Ratio())
	region := int(float64(h) * ratio)
	target := int(float64(h) * ratio * padding)
	if target <= 0 {
		return fmt.Errorf("%w: caption height %d", ErrGeometry, target)
	}

	caption = imaging.ResizeToHeight(caption, target)
	if caption.Bounds().Dx() > w {
		caption = imaging.ResizeToWidth(caption, w)
	}

	cs := caption.Bounds().Size()
	at := image.Pt((w-cs.X)/2, h-region+(region-cs.Y)/2)

	result := imaging.Fill(w, h, imaging.Transparent)
	imaging.Paste(result, c.Image(), image.Point{})
	imaging.Overlay(result, caption, at)
	c.Update(result)
	return nil
}

func (s *Simple) caption(c *container.Container) (*image.NRGBA, error) {
	model := strings.NewReplacer("/", " ", "_", " ").Replace(c.Model())
	cameraMake, _, _ := strings.Cut(c.Make(), " ")

	shotOn, err := s.render("Shot on", false, simpleDark)
	if err != nil {
		return nil, err
	}
	modelImg, err := s.render(model, true, simpleRed)
	if err != nil {
		return nil, err
	}
	makeImg, err := s.render(cameraMake, true, simpleDark)
	if err != nil {
		return nil, err
	}
	params, err := s.render(c.ParamString(), false, simpleLight)
	if err != nil {
		return nil, err
	}

	first := imaging.Merge([]image.Image{
		shotOn, middleHorizontalGap(), modelImg, middleHorizontalGap(), makeImg,
	}, imaging.AlignEnd)
	return imaging.Concatenate([]image.Image{first, middleVerticalGap(), params}, imaging.AlignCenter), nil
}

func (s *Simple) render(str string, bold bool, c color.Color) (*image.NRGBA, error) {
	img, err := s.text.Render(str, text.Style{Family: text.Alternative, Bold: bold, Color: c})
	if err != nil {
		return nil, fmt.Errorf("failed to render %q: %w", str, err)
	}
	return img, nil
}
