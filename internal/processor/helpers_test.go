package processor

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/metadata"
	"github.com/ironsheep/photo-watermark-mcp/internal/text"
)

var photoColor = color.NRGBA{R: 40, G: 90, B: 160, A: 255}

// fakeText renders each rune as a solid block, 10px wide (14 when bold) and
// 20px tall (30 when bold). It records every call.
type fakeText struct {
	calls []fakeCall
	err   error
}

type fakeCall struct {
	s     string
	style text.Style
}

func (f *fakeText) Render(s string, st text.Style) (*image.NRGBA, error) {
	f.calls = append(f.calls, fakeCall{s, st})
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(s) == "" {
		return image.NewNRGBA(image.Rectangle{}), nil
	}
	w, h := 10, 20
	if st.Bold {
		w, h = 14, 30
	}
	return imaging.Fill(w*len([]rune(s)), h, st.Color), nil
}

func (f *fakeText) rendered() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.s
	}
	return out
}

// fakeLogos serves a fixed logo for every make it knows.
type fakeLogos struct {
	logos map[string]image.Image
	err   error
	asked []string
}

func (f *fakeLogos) Load(cameraMake string) (image.Image, error) {
	f.asked = append(f.asked, cameraMake)
	if f.err != nil {
		return nil, f.err
	}
	return f.logos[cameraMake], nil
}

// recorder is a stage that appends its id to a shared log.
type recorder struct {
	id  string
	log *[]string
	err error
}

func (r recorder) ID() string { return r.id }

func (r recorder) Process(*container.Container) error {
	*r.log = append(*r.log, r.id)
	return r.err
}

var errBoom = errors.New("boom")

func testMeta() *metadata.Metadata {
	return &metadata.Metadata{
		Make:        "NIKON CORPORATION",
		Model:       "NIKON Z 6",
		LensModel:   "NIKKOR Z 50mm f/1.8 S",
		FocalLength: 50,
		FNumber:     1.8,
		ExposureNum: 1, ExposureDen: 125,
		ISO:         100,
		DateTime:    time.Date(2023, 5, 17, 18, 42, 0, 0, time.UTC),
		Orientation: 1,
	}
}

func newContainer(t *testing.T, w, h int) *container.Container {
	t.Helper()
	c, err := container.New(imaging.Fill(w, h, photoColor), testMeta())
	require.NoError(t, err)
	return c
}

func size(c *container.Container) image.Point {
	return image.Pt(c.Width(), c.Height())
}

func at(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}
