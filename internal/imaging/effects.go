package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Blur applies a Gaussian blur with the given radius. A non-positive radius
// returns an unmodified copy.
func Blur(img image.Image, radius float64) *image.NRGBA {
	if radius <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Clone(blur.Gaussian(img, radius))
}

// Blend mixes c into img: the result is img*(1-amount) + c*amount.
func Blend(img image.Image, c color.Color, amount float64) *image.NRGBA {
	s := img.Bounds().Size()
	overlay := Fill(s.X, s.Y, c)
	return imaging.Clone(blend.Opacity(imaging.Clone(img), overlay, amount))
}

// Resize scales img to exactly width x height with a Lanczos filter.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// ResizeToWidth scales img uniformly so that it is width pixels wide.
func ResizeToWidth(img image.Image, width int) *image.NRGBA {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// ResizeToHeight scales img uniformly so that it is height pixels tall.
func ResizeToHeight(img image.Image, height int) *image.NRGBA {
	return imaging.Resize(img, 0, height, imaging.Lanczos)
}

// Scale resizes img by factor, truncating the resulting dimensions. A result
// with no pixels is returned as an empty image.
func Scale(img image.Image, factor float64) *image.NRGBA {
	s := img.Bounds().Size()
	w, h := int(float64(s.X)*factor), int(float64(s.Y)*factor)
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	return Resize(img, w, h)
}

// RoundCorners returns a copy of img whose four corners are cut to quarter
// circles of the given radius. Pixels outside the arcs become transparent.
func RoundCorners(img image.Image, radius int) *image.NRGBA {
	dst := imaging.Clone(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	radius = min(radius, w/2, h/2)
	if radius <= 0 {
		return dst
	}

	r2 := radius * radius
	corners := [4]image.Point{
		{radius, radius},
		{w - radius - 1, radius},
		{radius, h - radius - 1},
		{w - radius - 1, h - radius - 1},
	}
	for i, c := range corners {
		x0, y0 := 0, 0
		if i%2 == 1 {
			x0 = w - radius
		}
		if i >= 2 {
			y0 = h - radius
		}
		for y := y0; y < y0+radius; y++ {
			for x := x0; x < x0+radius; x++ {
				dx, dy := x-c.X, y-c.Y
				if dx*dx+dy*dy > r2 {
					dst.Pix[dst.PixOffset(x, y)+3] = 0
				}
			}
		}
	}
	return dst
}

// SoftShadow draws img over a blurred, offset silhouette of itself.
//
// The returned canvas is large enough to hold the blur spread and the offset
// in every direction. origin is where img's top-left corner ended up inside
// the canvas, so callers wanting img at point p paste the canvas at p-origin.
func SoftShadow(img image.Image, radius int, offset image.Point, opacity uint8) (canvas *image.NRGBA, origin image.Point) {
	b := img.Bounds()
	radius = max(radius, 0)
	w := b.Dx() + 2*radius + abs(offset.X)
	h := b.Dy() + 2*radius + abs(offset.Y)

	shadowAt := image.Pt(radius+max(offset.X, 0), radius+max(offset.Y, 0))
	origin = image.Pt(radius+max(-offset.X, 0), radius+max(-offset.Y, 0))

	layer := Fill(w, h, Transparent)
	shade := image.NewUniform(color.NRGBA{A: opacity})
	draw.DrawMask(layer, image.Rectangle{Min: shadowAt, Max: shadowAt.Add(b.Size())}, shade, image.Point{}, img, b.Min, draw.Over)

	canvas = Blur(layer, float64(radius))
	Overlay(canvas, img, origin)
	return canvas, origin
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
