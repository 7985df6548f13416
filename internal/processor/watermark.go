package processor

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/text"
)

// TextStyle is the look of one quadrant.
type TextStyle struct {
	Color color.Color
	Bold  bool
}

// WatermarkStyle parameterizes the watermark band: palette, logo placement
// and per-quadrant text style.
type WatermarkStyle struct {
	Background color.Color
	Line       color.Color
	LogoEnable bool
	LogoLeft   bool

	LeftTop, LeftBottom, RightTop, RightBottom TextStyle
}

// DefaultStyle is dark text on white.
func DefaultStyle(logoLeft bool) WatermarkStyle {
	dark := imaging.MustParseColor("#212121")
	soft := imaging.MustParseColor("#424242")
	return WatermarkStyle{
		Background:  imaging.White,
		Line:        imaging.Gray,
		LogoEnable:  true,
		LogoLeft:    logoLeft,
		LeftTop:     TextStyle{Color: dark, Bold: true},
		LeftBottom:  TextStyle{Color: soft},
		RightTop:    TextStyle{Color: dark, Bold: true},
		RightBottom: TextStyle{Color: soft},
	}
}

// DarkStyle is red and light grey text on near-black.
func DarkStyle(logoLeft bool) WatermarkStyle {
	red := imaging.MustParseColor("#D32F2F")
	light := imaging.MustParseColor("#d4d1cc")
	return WatermarkStyle{
		Background:  imaging.MustParseColor("#212121"),
		Line:        imaging.Gray,
		LogoEnable:  true,
		LogoLeft:    logoLeft,
		LeftTop:     TextStyle{Color: red, Bold: true},
		LeftBottom:  TextStyle{Color: light},
		RightTop:    TextStyle{Color: red, Bold: true},
		RightBottom: TextStyle{Color: light},
	}
}

// CustomStyle takes every setting from the layout section of cfg.
func CustomStyle(cfg *config.Config) (WatermarkStyle, error) {
	var errs []error
	parse := func(spec string) color.Color {
		c, err := imaging.ParseColor(spec)
		if err != nil {
			errs = append(errs, err)
		}
		return c
	}
	quadrant := func(e config.Element) TextStyle {
		return TextStyle{Color: parse(e.Color), Bold: e.IsBold}
	}

	s := WatermarkStyle{
		Background:  parse(cfg.BackgroundColor()),
		Line:        parse(cfg.LineColor()),
		LogoEnable:  cfg.HasLogoEnabled(),
		LogoLeft:    cfg.IsLogoLeft(),
		LeftTop:     quadrant(cfg.LeftTop()),
		LeftBottom:  quadrant(cfg.LeftBottom()),
		RightTop:    quadrant(cfg.RightTop()),
		RightBottom: quadrant(cfg.RightBottom()),
	}
	if err := errors.Join(errs...); err != nil {
		return WatermarkStyle{}, fmt.Errorf("invalid custom watermark style: %w", err)
	}
	return s, nil
}

// BandRatios returns the band height as a fraction of its width, and the
// vertical whitespace fraction inside each text column, for an image of the
// given aspect ratio. level shifts both.
func BandRatios(aspect float64, level int) (ratio, padding float64) {
	if aspect >= 1 {
		return .04 + .02*float64(level), .52 - .04*float64(level)
	}
	return .09 + .02*float64(level), .7 - .04*float64(level)
}

// Watermark appends a band holding four text quadrants and an optional logo
// below the photo.
type Watermark struct {
	id       string
	style    WatermarkStyle
	elements config.Elements
	level    int
	text     TextRenderer
	logos    LogoSource

	columnGap image.Image
	solidLine image.Image
}

// NewWatermark builds a watermark stage. Quadrant contents and the padding
// level come from cfg; looks come from style. logos may be nil.
func NewWatermark(id string, style WatermarkStyle, cfg *config.Config, tr TextRenderer, logos LogoSource) *Watermark {
	w := &Watermark{
		id:       id,
		style:    style,
		elements: cfg.Layout.Elements,
		level:    cfg.FontPaddingLevel(),
		text:     tr,
		logos:    logos,
	}
	if style.Background != nil {
		w.columnGap = imaging.Fill(columnGapWidth, columnGapHeight, style.Background)
	}
	if style.Line != nil {
		w.solidLine = imaging.Fill(lineWidth, NormalHeight, style.Line)
	}
	return w
}

func (w *Watermark) ID() string { return w.id }

// Style returns the style the stage was built with.
func (w *Watermark) Style() WatermarkStyle { return w.style }

// Process keeps the width and appends the band below the photo.
func (w *Watermark) Process(c *container.Container) error {
	if w.text == nil || w.style.Background == nil || w.style.Line == nil {
		return ErrUnconfigured
	}

	band, err := w.band(c)
	if err != nil {
		return err
	}

	width, height := c.Width(), c.Height()
	bh := band.Bounds().Dy()
	result := imaging.Fill(width, height+bh, w.style.Background)
	imaging.Overlay(result, c.Image(), image.Point{})
	imaging.Overlay(result, band, image.Pt(0, height))

	result = imaging.ApplyOrientation(result, c.Orientation())
	c.Update(imaging.Flatten(result, w.style.Background))
	return nil
}

// band lays out the watermark at NormalHeight and scales it to the working
// width.
func (w *Watermark) band(c *container.Container) (*image.NRGBA, error) {
	ratio, padding := BandRatios(c.Ratio(), w.level)
	if ratio <= 0 || padding < 0 {
		return nil, fmt.Errorf("%w: band ratio %.2f, padding ratio %.2f", ErrGeometry, ratio, padding)
	}

	left, right, err := w.columns(c, padding)
	if err != nil {
		return nil, err
	}

	band := imaging.Fill(int(NormalHeight/ratio), NormalHeight, w.style.Background)

	if !w.style.LogoEnable {
		imaging.AppendBySide(band, []image.Image{left}, sidePadding, false)
		imaging.AppendBySide(band, []image.Image{right}, sidePadding, true)
		return imaging.ResizeToWidth(band, c.Width()), nil
	}

	logo, err := w.logo(c, padding)
	if err != nil {
		return nil, err
	}
	line := transparentLine()
	if logo != nil {
		p := int(padding * NormalHeight * .8)
		line = imaging.ResizeToHeight(imaging.Pad(w.solidLine, imaging.Sides(p, "tb"), imaging.Transparent), NormalHeight)
	}

	if w.style.LogoLeft {
		imaging.AppendBySide(band, []image.Image{logo, line, left}, sidePadding, false)
		imaging.AppendBySide(band, []image.Image{right}, sidePadding, true)
	} else {
		imaging.AppendBySide(band, []image.Image{left}, sidePadding, false)
		imaging.AppendBySide(band, []image.Image{logo, line, right}, sidePadding, true)
	}
	return imaging.ResizeToWidth(band, c.Width()), nil
}

// columns renders both text columns and brings them to NormalHeight. The
// returned columns always have the same height.
func (w *Watermark) columns(c *container.Container, padding float64) (left, right *image.NRGBA, err error) {
	left, err = w.column(c, w.elements.LeftTop, w.style.LeftTop, w.elements.LeftBottom, w.style.LeftBottom)
	if err != nil {
		return nil, nil, err
	}
	right, err = w.column(c, w.elements.RightTop, w.style.RightTop, w.elements.RightBottom, w.style.RightBottom)
	if err != nil {
		return nil, nil, err
	}

	maxHeight := max(left.Bounds().Dy(), right.Bounds().Dy())
	p := int(float64(maxHeight) * padding)
	left = imaging.Pad(left, imaging.Sides(p, "tb"), imaging.Transparent)
	right = imaging.Pad(right, imaging.Sides(p, "t"), imaging.Transparent)

	final := max(left.Bounds().Dy(), right.Bounds().Dy())
	left = imaging.Pad(left, imaging.Sides(final-left.Bounds().Dy(), "b"), imaging.Transparent)
	right = imaging.Pad(right, imaging.Sides(final-right.Bounds().Dy(), "b"), imaging.Transparent)

	return imaging.ResizeToHeight(left, NormalHeight), imaging.ResizeToHeight(right, NormalHeight), nil
}

// column stacks the top and bottom quadrant text around the column gap. With
// both quadrants empty the column is just the gap.
func (w *Watermark) column(c *container.Container, top config.Element, topStyle TextStyle, bottom config.Element, bottomStyle TextStyle) (*image.NRGBA, error) {
	t, err := w.render(c.Attribute(top), topStyle)
	if err != nil {
		return nil, err
	}
	b, err := w.render(c.Attribute(bottom), bottomStyle)
	if err != nil {
		return nil, err
	}
	return imaging.Concatenate([]image.Image{t, w.columnGap, b}, imaging.AlignStart), nil
}

func (w *Watermark) render(s string, st TextStyle) (*image.NRGBA, error) {
	if st.Color == nil {
		return nil, fmt.Errorf("%w: quadrant has no color", ErrUnconfigured)
	}
	img, err := w.text.Render(s, text.Style{Family: text.Primary, Bold: st.Bold, Color: st.Color})
	if err != nil {
		return nil, fmt.Errorf("failed to render %q: %w", s, err)
	}
	return img, nil
}

// logo loads the logo for the container's make, padded and scaled to
// NormalHeight. It returns nil when no logo exists.
func (w *Watermark) logo(c *container.Container, padding float64) (image.Image, error) {
	if w.logos == nil {
		return nil, nil
	}
	img, err := w.logos.Load(c.Make())
	if err != nil {
		return nil, fmt.Errorf("failed to load logo: %w", err)
	}
	if imaging.Empty(img) {
		return nil, nil
	}
	p := int(padding * float64(img.Bounds().Dy()))
	return imaging.ResizeToHeight(imaging.Pad(img, imaging.Sides(p, "tb"), imaging.Transparent), NormalHeight), nil
}
