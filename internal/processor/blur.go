package processor

import (
	"fmt"
	"image"

	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/text"
)

const (
	// PaddingPercentInBackground is how much larger than the photo the
	// blurred backdrop is, per dimension.
	PaddingPercentInBackground = 0.18
	// GaussianKernelRadius is the blur radius of every backdrop.
	GaussianKernelRadius = 75

	// whiteBlend is how far backdrops are pulled toward white.
	whiteBlend = 0.1
)

// Parameters of the BackgroundBlurWithParams decoration.
const (
	paramsAreaRatio   = 0.08
	paramsLineGap     = 10
	maxTextWidthRatio = 0.75
	cornerRatio       = 0.01
	photoShadowRadius = 15
	photoShadowAlpha  = 128
)

var (
	photoShadowOffset = image.Pt(5, 5)
	paramsTextColor   = imaging.MustParseColor("#F5F5F5")
)

func enlarged(n int) int {
	return int(float64(n) * (1 + PaddingPercentInBackground))
}

func inset(n int) int {
	return int(float64(n) * PaddingPercentInBackground / 2)
}

func backdrop(img image.Image, width, height int) *image.NRGBA {
	bg := imaging.Blur(img, GaussianKernelRadius)
	bg = imaging.Blend(bg, imaging.White, whiteBlend)
	return imaging.Resize(bg, width, height)
}

// BackgroundBlur centers the photo on an enlarged, blurred and lightened copy
// of itself.
type BackgroundBlur struct{}

func (BackgroundBlur) ID() string { return BackgroundBlurID }

// Process grows both dimensions by 18%.
func (BackgroundBlur) Process(c *container.Container) error {
	img := c.Image()
	w, h := c.Width(), c.Height()

	bg := backdrop(img, enlarged(w), enlarged(h))
	imaging.Paste(bg, img, image.Pt(inset(w), inset(h)))
	c.Update(bg)
	return nil
}

// BackgroundBlurWithWhiteBorder frames the photo in white and centers it on a
// blurred backdrop made from the unmodified source photo.
type BackgroundBlurWithWhiteBorder struct {
	// Percent scales the white border: Percent * min(w, h) / 256 pixels.
	Percent int
}

func (BackgroundBlurWithWhiteBorder) ID() string { return BackgroundBlurWithWhiteBorderID }

// Process adds the white border, then grows the framed size by 18%.
func (s BackgroundBlurWithWhiteBorder) Process(c *container.Container) error {
	border := s.Percent * min(c.Width(), c.Height()) / 256
	framed := imaging.Pad(c.Image(), imaging.Uniform(border), imaging.White)
	fw, fh := framed.Bounds().Dx(), framed.Bounds().Dy()

	bg := backdrop(c.Original(), enlarged(fw), enlarged(fh))
	imaging.Paste(bg, framed, image.Pt(inset(fw), inset(fh)))
	c.Update(bg)
	return nil
}

// BackgroundBlurWithParams places the photo, with rounded corners and a drop
// shadow, on one blurred canvas that also holds a caption band with the
// camera model and capture parameters.
type BackgroundBlurWithParams struct {
	text TextRenderer
}

// NewBackgroundBlurWithParams returns the stage drawing captions with tr.
func NewBackgroundBlurWithParams(tr TextRenderer) *BackgroundBlurWithParams {
	return &BackgroundBlurWithParams{text: tr}
}

func (*BackgroundBlurWithParams) ID() string { return BackgroundBlurWithParamsID }

// ParamsLayout is the geometry of a BackgroundBlurWithParams canvas.
type ParamsLayout struct {
	Width, Height int
	// AreaHeight is the height of the caption band.
	AreaHeight int
	// TopPadding shifts the photo and the caption band upward.
	TopPadding int
}

// NewParamsLayout computes the canvas for a w x h photo.
func NewParamsLayout(w, h int) ParamsLayout {
	area := int(float64(h) * paramsAreaRatio)
	return ParamsLayout{
		Width:      enlarged(w),
		Height:     enlarged(h) + area,
		AreaHeight: area,
		TopPadding: int(float64(h)*PaddingPercentInBackground) / 10,
	}
}

// TextScale is the single factor applied to both caption bitmaps. It keeps
// the two lines plus the gap within the band height, and the wider line
// within three quarters of the canvas width. Zero-extent text scales by 1.
func (l ParamsLayout) TextScale(model, params image.Point) float64 {
	textHeight := model.Y + params.Y
	if textHeight <= 0 {
		return 1.0
	}
	scale := float64(l.AreaHeight-paramsLineGap) / float64(textHeight)
	if widest := max(model.X, params.X); widest > 0 {
		scale = min(scale, maxTextWidthRatio*float64(l.Width)/float64(widest))
	}
	return max(scale, 0)
}

// Process grows the image to the ParamsLayout canvas. A caption band too
// short to hold the text is an ErrGeometry.
func (s *BackgroundBlurWithParams) Process(c *container.Container) error {
	if s.text == nil {
		return ErrUnconfigured
	}

	img := c.Image()
	w, h := c.Width(), c.Height()
	l := NewParamsLayout(w, h)

	bg := imaging.Resize(img, l.Width, l.Height)
	bg = imaging.Blur(bg, GaussianKernelRadius)
	bg = imaging.Blend(bg, imaging.White, whiteBlend)

	model, err := s.text.Render(c.Model(), text.Style{Bold: true, Color: paramsTextColor})
	if err != nil {
		return fmt.Errorf("failed to render model: %w", err)
	}
	params, err := s.text.Render(c.ParamString(), text.Style{Color: paramsTextColor})
	if err != nil {
		return fmt.Errorf("failed to render parameters: %w", err)
	}

	hasModel, hasParams := !imaging.Empty(model), !imaging.Empty(params)
	if (hasModel || hasParams) && l.AreaHeight <= paramsLineGap {
		return fmt.Errorf("%w: caption band %dpx for a %dx%d photo", ErrGeometry, l.AreaHeight, w, h)
	}
	scale := l.TextScale(model.Bounds().Size(), params.Bounds().Size())
	model = scaleText(model, scale)
	params = scaleText(params, scale)
	if hasModel && imaging.Empty(model) || hasParams && imaging.Empty(params) {
		return fmt.Errorf("%w: caption scaled to nothing (factor %.4f)", ErrGeometry, scale)
	}

	mh := model.Bounds().Dy()
	textHeight := mh + paramsLineGap + params.Bounds().Dy()
	y := l.Height - l.AreaHeight + (l.AreaHeight-textHeight)/2 - l.TopPadding
	imaging.Overlay(bg, model, image.Pt((l.Width-model.Bounds().Dx())/2, y))
	imaging.Overlay(bg, params, image.Pt((l.Width-params.Bounds().Dx())/2, y+mh+paramsLineGap))

	rounded := imaging.RoundCorners(img, int(float64(w)*cornerRatio))
	shadowed, origin := imaging.SoftShadow(rounded, photoShadowRadius, photoShadowOffset, photoShadowAlpha)

	// Put the photo itself at the inset, then keep the whole decoration on
	// the canvas.
	at := image.Pt(inset(w), inset(h)-l.TopPadding).Sub(origin)
	ss := shadowed.Bounds().Size()
	at.X = max(min(at.X, l.Width-ss.X), 0)
	at.Y = max(min(at.Y, l.Height-ss.Y), 0)
	imaging.Overlay(bg, shadowed, at)

	c.Update(bg)
	return nil
}

func scaleText(img *image.NRGBA, scale float64) *image.NRGBA {
	if imaging.Empty(img) || scale == 1 {
		return img
	}
	return imaging.Scale(img, scale)
}
