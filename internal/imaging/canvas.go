package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Insets is a per-side amount of padding in pixels.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Uniform returns Insets with the same padding on all four sides.
func Uniform(n int) Insets {
	return Insets{Top: n, Right: n, Bottom: n, Left: n}
}

// Sides builds Insets from a location string such as "tb" or "tlr", applying n
// to every side named: t(op), b(ottom), l(eft), r(ight).
func Sides(n int, location string) Insets {
	var in Insets
	for _, ch := range location {
		switch ch {
		case 't':
			in.Top = n
		case 'b':
			in.Bottom = n
		case 'l':
			in.Left = n
		case 'r':
			in.Right = n
		}
	}
	return in
}

// Empty reports whether img has no pixels.
func Empty(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}

// Fill returns a new width x height canvas filled with c.
func Fill(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// Pad expands img by the given insets. The new area is filled with fill and
// the source pixels are copied unchanged (no blending) at (Left, Top).
func Pad(img image.Image, in Insets, fill color.Color) *image.NRGBA {
	b := img.Bounds()
	dst := imaging.New(b.Dx()+in.Left+in.Right, b.Dy()+in.Top+in.Bottom, fill)
	Paste(dst, img, image.Pt(in.Left, in.Top))
	return dst
}

// Paste copies src onto dst at pt, replacing the covered pixels.
func Paste(dst *image.NRGBA, src image.Image, pt image.Point) {
	if Empty(src) {
		return
	}
	b := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: pt, Max: pt.Add(b.Size())}, src, b.Min, draw.Src)
}

// Overlay alpha-composites src over dst at pt, in place.
func Overlay(dst *image.NRGBA, src image.Image, pt image.Point) {
	if Empty(src) {
		return
	}
	b := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: pt, Max: pt.Add(b.Size())}, src, b.Min, draw.Over)
}

// AlphaComposite returns fg composited over bg. Both must have the same size.
func AlphaComposite(bg, fg image.Image) *image.NRGBA {
	dst := imaging.Clone(bg)
	Overlay(dst, fg, image.Point{})
	return dst
}

// Align selects where narrower images sit when stacking.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Concatenate stacks images top to bottom on a transparent canvas as wide as
// the widest input. Nil and empty images contribute nothing.
func Concatenate(images []image.Image, align Align) *image.NRGBA {
	return stack(images, true, align)
}

// Merge lays images left to right on a transparent canvas as tall as the
// tallest input.
func Merge(images []image.Image, align Align) *image.NRGBA {
	return stack(images, false, align)
}

func stack(images []image.Image, vertical bool, align Align) *image.NRGBA {
	var along, across int
	for _, img := range images {
		if Empty(img) {
			continue
		}
		s := img.Bounds().Size()
		if vertical {
			along += s.Y
			across = max(across, s.X)
		} else {
			along += s.X
			across = max(across, s.Y)
		}
	}

	var dst *image.NRGBA
	if vertical {
		dst = Fill(across, along, Transparent)
	} else {
		dst = Fill(along, across, Transparent)
	}

	offset := 0
	for _, img := range images {
		if Empty(img) {
			continue
		}
		s := img.Bounds().Size()
		if vertical {
			Paste(dst, img, image.Pt(alignOffset(across, s.X, align), offset))
			offset += s.Y
		} else {
			Paste(dst, img, image.Pt(offset, alignOffset(across, s.Y, align)))
			offset += s.X
		}
	}
	return dst
}

func alignOffset(total, size int, align Align) int {
	switch align {
	case AlignCenter:
		return (total - size) / 2
	case AlignEnd:
		return total - size
	default:
		return 0
	}
}

// AppendBySide overlays images in a row onto dst, each vertically centered.
//
// With fromRight false the row starts padding pixels from the left edge and
// runs rightwards; with fromRight true the row ends padding pixels from the
// right edge. Nil images are skipped.
func AppendBySide(dst *image.NRGBA, images []image.Image, padding int, fromRight bool) {
	h := dst.Bounds().Dy()
	if fromRight {
		x := dst.Bounds().Dx() - padding
		for i := len(images) - 1; i >= 0; i-- {
			img := images[i]
			if Empty(img) {
				continue
			}
			s := img.Bounds().Size()
			x -= s.X
			Overlay(dst, img, image.Pt(x, (h-s.Y)/2))
		}
		return
	}

	x := padding
	for _, img := range images {
		if Empty(img) {
			continue
		}
		s := img.Bounds().Size()
		Overlay(dst, img, image.Pt(x, (h-s.Y)/2))
		x += s.X
	}
}

// Square pads img to a max(w,h) square filled with fill, keeping the content
// centered and undistorted.
func Square(img image.Image, fill color.Color) *image.NRGBA {
	s := img.Bounds().Size()
	side := max(s.X, s.Y)
	dst := Fill(side, side, fill)
	Overlay(dst, img, image.Pt((side-s.X)/2, (side-s.Y)/2))
	return dst
}

// Flatten composites img onto an opaque background, dropping transparency.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	s := img.Bounds().Size()
	dst := Fill(s.X, s.Y, bg)
	Overlay(dst, img, image.Point{})
	return dst
}
