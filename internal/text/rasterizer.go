// Package text turns strings into tightly cropped, transparent bitmaps.
package text

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Family selects which pair of fonts a rendering uses.
type Family int

const (
	// Primary is the main font pair, used by the watermark band.
	Primary Family = iota
	// Alternative is the secondary pair, used by the simple caption.
	Alternative
)

// Style describes how a string is drawn.
type Style struct {
	Family Family
	Bold   bool
	Color  color.Color
}

// DefaultSize is the em size used when a FontSet leaves Size unset.
const DefaultSize = 240

// Rasterizer renders text with a fixed set of parsed fonts. Parsed fonts are
// immutable, so a Rasterizer can be shared between goroutines; a fresh face is
// created for every call.
type Rasterizer struct {
	regular, bold       *truetype.Font
	altRegular, altBold *truetype.Font
	size                float64
}

// NewRasterizer loads every font in fs. A missing file yields ErrMissingFont.
func NewRasterizer(fs FontSet) (*Rasterizer, error) {
	r := &Rasterizer{size: fs.Size}
	if r.size <= 0 {
		r.size = DefaultSize
	}

	var err error
	if r.regular, err = loadFont(fs.Regular, embeddedRegular); err != nil {
		return nil, err
	}
	if r.bold, err = loadFont(fs.Bold, embeddedBold); err != nil {
		return nil, err
	}

	r.altRegular, r.altBold = r.regular, r.bold
	if fs.AlternativeRegular != "" {
		if r.altRegular, err = loadFont(fs.AlternativeRegular, nil); err != nil {
			return nil, err
		}
	}
	if fs.AlternativeBold != "" {
		if r.altBold, err = loadFont(fs.AlternativeBold, nil); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Rasterizer) pick(st Style) *truetype.Font {
	switch {
	case st.Family == Alternative && st.Bold:
		return r.altBold
	case st.Family == Alternative:
		return r.altRegular
	case st.Bold:
		return r.bold
	default:
		return r.regular
	}
}

// Render draws s on a transparent canvas cropped to the glyph extents.
// An empty or blank string yields a zero-size image.
func (r *Rasterizer) Render(s string, st Style) (*image.NRGBA, error) {
	if strings.TrimSpace(s) == "" {
		return image.NewNRGBA(image.Rectangle{}), nil
	}
	if st.Color == nil {
		return nil, fmt.Errorf("text style for %q has no color", s)
	}

	face := truetype.NewFace(r.pick(st), &truetype.Options{
		Size:    r.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	bounds, _ := font.BoundString(face, s)
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	w := bounds.Max.X.Ceil() - minX
	h := bounds.Max.Y.Ceil() - minY
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rectangle{}), nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(st.Color),
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(s)
	return dst, nil
}
