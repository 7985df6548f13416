// Package container holds the working image threaded through a processor chain
// together with the photo metadata the stages read.
package container

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	imgutil "github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/metadata"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04"
)

// Container owns the working image of one composition.
//
// Width, Height and Ratio always describe the current working image. The
// original image and its ratio are fixed at construction. A Container is not
// safe for concurrent use; every composition gets its own.
type Container struct {
	img           *image.NRGBA
	original      *image.NRGBA
	originalRatio float64
	meta          metadata.Metadata
	path          string
	equivalent    bool
}

// Option configures a Container.
type Option func(*Container)

// WithPath records the source file path, used by the Filename selectors.
func WithPath(path string) Option {
	return func(c *Container) { c.path = path }
}

// WithEquivalentFocalLength makes ParamString prefer the 35mm-equivalent
// focal length when the photo records one.
func WithEquivalentFocalLength(enable bool) Option {
	return func(c *Container) { c.equivalent = enable }
}

// New builds a Container from a decoded photo and its metadata. The EXIF
// orientation is applied once here, so the working image starts upright and
// the stored orientation is reset to 1.
func New(img image.Image, meta *metadata.Metadata, opts ...Option) (*Container, error) {
	if imgutil.Empty(img) {
		return nil, errors.New("container: empty image")
	}
	if meta == nil {
		meta = metadata.Empty()
	}

	c := &Container{meta: *meta}
	for _, opt := range opts {
		opt(c)
	}

	c.original = imgutil.ApplyOrientation(img, c.meta.Orientation)
	c.meta.Orientation = 1
	c.img = imaging.Clone(c.original)
	c.originalRatio = ratio(c.original)
	return c, nil
}

// FromSource builds a Container from a decoded file, reading EXIF from its raw
// bytes. A photo without EXIF gets empty metadata.
func FromSource(src *imgutil.Source, opts ...Option) (*Container, error) {
	meta, err := metadata.Extract(bytes.NewReader(src.Raw))
	if err != nil && !errors.Is(err, metadata.ErrNoExif) {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", src.Path, err)
	}
	return New(src.Image, meta, append([]Option{WithPath(src.Path)}, opts...)...)
}

// Open reads the photo at path and builds a Container from it.
func Open(path string, opts ...Option) (*Container, error) {
	src, err := imgutil.Open(path)
	if err != nil {
		return nil, err
	}
	return FromSource(src, opts...)
}

// Image returns the current working image. Stages must not modify it in
// place; they build a new image and call Update.
func (c *Container) Image() *image.NRGBA { return c.img }

// Original returns the upright source photo, never modified by stages.
func (c *Container) Original() *image.NRGBA { return c.original }

// Update replaces the working image.
func (c *Container) Update(img image.Image) {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		c.img = nrgba
		return
	}
	c.img = imaging.Clone(img)
}

// Width is the width of the working image.
func (c *Container) Width() int { return c.img.Bounds().Dx() }

// Height is the height of the working image.
func (c *Container) Height() int { return c.img.Bounds().Dy() }

// Ratio is Width/Height of the working image.
func (c *Container) Ratio() float64 { return ratio(c.img) }

// OriginalRatio is Width/Height of the source photo.
func (c *Container) OriginalRatio() float64 { return c.originalRatio }

// Orientation is the EXIF orientation still to be applied to the working
// image; 1 after construction.
func (c *Container) Orientation() int { return c.meta.Orientation }

// Metadata returns a copy of the photo metadata.
func (c *Container) Metadata() metadata.Metadata { return c.meta }

// Make is the camera manufacturer.
func (c *Container) Make() string { return c.meta.Make }

// Model is the camera model.
func (c *Container) Model() string { return c.meta.Model }

// ParamString is the formatted capture parameters, e.g. "50mm F1.8 1/125s ISO100".
func (c *Container) ParamString() string { return c.meta.ParamString(c.equivalent) }

// Attribute resolves a quadrant element to its display text. Unknown
// selectors and unrecorded fields resolve to "".
func (c *Container) Attribute(e config.Element) string {
	m := &c.meta
	switch e.Name {
	case config.ModelValue:
		return m.Model
	case config.MakeValue:
		return m.Make
	case config.LensValue:
		return m.LensModel
	case config.ParamValue:
		return c.ParamString()
	case config.DatetimeValue:
		return c.formatTime(datetimeLayout)
	case config.DateValue:
		return c.formatTime(dateLayout)
	case config.CustomValue:
		return e.Value
	case config.LensMakeLensModelValue:
		return join(m.LensMake, m.LensModel)
	case config.CameraModelLensValue:
		return join(m.Model, m.LensModel)
	case config.CameraMakeModelValue:
		return join(m.Make, m.Model)
	case config.TotalPixelValue:
		s := c.original.Bounds().Size()
		return strconv.Itoa(s.X*s.Y/1_000_000) + "MP"
	case config.FilenameValue:
		return c.filename()
	case config.DateFilenameValue:
		return join(c.formatTime(dateLayout), c.filename())
	case config.DatetimeFilenameValue:
		return join(c.formatTime(datetimeLayout), c.filename())
	default:
		return ""
	}
}

func (c *Container) formatTime(layout string) string {
	if c.meta.DateTime.IsZero() {
		return ""
	}
	return c.meta.DateTime.Format(layout)
}

func (c *Container) filename() string {
	if c.path == "" {
		return ""
	}
	base := filepath.Base(c.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func ratio(img image.Image) float64 {
	s := img.Bounds().Size()
	if s.Y == 0 {
		return 0
	}
	return float64(s.X) / float64(s.Y)
}
