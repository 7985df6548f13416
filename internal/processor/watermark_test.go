package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/text"
)

func TestBandRatios(t *testing.T) {
	tests := []struct {
		name           string
		aspect         float64
		level          int
		ratio, padding float64
	}{
		{"landscape", 4.0 / 3.0, 0, .04, .52},
		{"square counts as landscape", 1, 0, .04, .52},
		{"portrait", .75, 0, .09, .7},
		{"landscape level 2", 1.5, 2, .08, .44},
		{"portrait level -1", .5, -1, .07, .74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, padding := BandRatios(tt.aspect, tt.level)
			assert.InDelta(t, tt.ratio, ratio, 1e-9)
			assert.InDelta(t, tt.padding, padding, 1e-9)
		})
	}
}

func newTestWatermark(style WatermarkStyle, cfg *config.Config, logos LogoSource) (*Watermark, *fakeText) {
	ft := &fakeText{}
	return NewWatermark(WatermarkLeftLogoID, style, cfg, ft, logos), ft
}

func TestWatermark_ColumnsHaveEqualHeight(t *testing.T) {
	tests := []struct {
		name     string
		elements config.Elements
	}{
		{"defaults", config.Default().Layout.Elements},
		{"left empty", config.Elements{
			LeftTop:     config.Element{Name: config.NoneValue},
			LeftBottom:  config.Element{Name: config.NoneValue},
			RightTop:    config.Element{Name: config.ParamValue},
			RightBottom: config.Element{Name: config.DatetimeValue},
		}},
		{"right empty", config.Elements{
			LeftTop:    config.Element{Name: config.ModelValue},
			LeftBottom: config.Element{Name: config.LensValue},
		}},
		{"long custom text", config.Elements{
			LeftTop:     config.Element{Name: config.CustomValue, Value: "x"},
			RightTop:    config.Element{Name: config.CustomValue, Value: "a much longer piece of custom text"},
			RightBottom: config.Element{Name: config.CameraModelLensValue},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Layout.Elements = tt.elements
			style := DefaultStyle(true)
			// Make the right column much taller than the left.
			style.RightTop.Bold, style.RightBottom.Bold = true, true
			w, _ := newTestWatermark(style, cfg, nil)

			_, padding := BandRatios(4.0/3.0, 0)
			left, right, err := w.columns(newContainer(t, 40, 30), padding)
			require.NoError(t, err)
			assert.Equal(t, left.Bounds().Dy(), right.Bounds().Dy())
			assert.Equal(t, NormalHeight, left.Bounds().Dy())
		})
	}
}

func TestWatermark_ResolvesQuadrantsWithStyles(t *testing.T) {
	w, ft := newTestWatermark(DarkStyle(true), config.Default(), nil)

	_, _, err := w.columns(newContainer(t, 40, 30), .5)
	require.NoError(t, err)

	require.Len(t, ft.calls, 4)
	assert.Equal(t, []string{"NIKON Z 6", "NIKON CORPORATION", "50mm F1.8 1/125s ISO100", "2023-05-17 18:42"}, ft.rendered())
	assert.True(t, ft.calls[0].style.Bold)
	assert.False(t, ft.calls[1].style.Bold)
	assert.Equal(t, text.Primary, ft.calls[0].style.Family)
	assert.Equal(t, imaging.MustParseColor("#D32F2F"), ft.calls[0].style.Color)
}

func TestWatermark_BandMatchesWorkingWidth(t *testing.T) {
	logos := &fakeLogos{logos: map[string]image.Image{
		"NIKON CORPORATION": imaging.Fill(300, 120, imaging.Black),
	}}

	for _, dims := range []image.Point{{800, 600}, {600, 800}, {1234, 777}} {
		for _, logoLeft := range []bool{true, false} {
			w, _ := newTestWatermark(DefaultStyle(logoLeft), config.Default(), logos)
			c := newContainer(t, dims.X, dims.Y)

			band, err := w.band(c)
			require.NoError(t, err)
			assert.Equal(t, dims.X, band.Bounds().Dx(), "%v logoLeft=%v", dims, logoLeft)
		}
	}
}

// runs returns the [start, end] x ranges of the row where match holds.
func runs(img *image.NRGBA, y int, match func(color.NRGBA) bool) [][2]int {
	var out [][2]int
	for x := 0; x < img.Bounds().Dx(); x++ {
		if !match(img.NRGBAAt(x, y)) {
			continue
		}
		if n := len(out); n > 0 && out[n-1][1] == x-1 {
			out[n-1][1] = x
		} else {
			out = append(out, [2]int{x, x})
		}
	}
	return out
}

func near(want color.NRGBA) func(color.NRGBA) bool {
	d := func(a, b uint8) int { return max(int(a)-int(b), int(b)-int(a)) }
	return func(c color.NRGBA) bool {
		return d(c.R, want.R) <= 4 && d(c.G, want.G) <= 4 && d(c.B, want.B) <= 4
	}
}

func TestWatermark_LogoAndDividerPlacement(t *testing.T) {
	cfg := config.Default()
	cfg.Global.FontPaddingLevel = 8
	ratio, _ := BandRatios(2, cfg.FontPaddingLevel())
	// A photo as wide as the unscaled band keeps pixels exact.
	width := int(NormalHeight / ratio)
	mid := NormalHeight / 2

	withLogo := &fakeLogos{logos: map[string]image.Image{
		"NIKON CORPORATION": imaging.Fill(300, 120, imaging.Black),
	}}

	t.Run("logo left", func(t *testing.T) {
		w, _ := newTestWatermark(DefaultStyle(true), cfg, withLogo)
		band, err := w.band(newContainer(t, width, 100))
		require.NoError(t, err)

		logo := runs(band, mid, near(imaging.Black))
		line := runs(band, mid, near(imaging.Gray))
		require.Len(t, logo, 1)
		require.Len(t, line, 1)
		assert.Equal(t, sidePadding, logo[0][0], "logo starts at the left edge")
		assert.Equal(t, logo[0][1]+1, line[0][0], "divider follows the logo")
		assert.Less(t, line[0][1], width/2)
	})

	t.Run("logo right", func(t *testing.T) {
		w, _ := newTestWatermark(DefaultStyle(false), cfg, withLogo)
		band, err := w.band(newContainer(t, width, 100))
		require.NoError(t, err)

		logo := runs(band, mid, near(imaging.Black))
		line := runs(band, mid, near(imaging.Gray))
		require.Len(t, logo, 1)
		require.Len(t, line, 1)
		assert.Greater(t, logo[0][0], sidePadding, "left text comes first")
		assert.Equal(t, logo[0][1]+1, line[0][0], "divider follows the logo")
		assert.Less(t, line[0][1], width-sidePadding-1, "right text closes the band")
	})

	t.Run("no logo", func(t *testing.T) {
		w, _ := newTestWatermark(DefaultStyle(true), cfg, &fakeLogos{})
		band, err := w.band(newContainer(t, width, 100))
		require.NoError(t, err)

		assert.Empty(t, runs(band, mid, near(imaging.Black)))
		assert.Empty(t, runs(band, mid, near(imaging.Gray)), "divider is transparent")
	})
}

func TestWatermark_AppendsBandBelowPhoto(t *testing.T) {
	logos := &fakeLogos{logos: map[string]image.Image{
		"NIKON CORPORATION": imaging.Fill(300, 120, imaging.Black),
	}}
	w, _ := newTestWatermark(DefaultStyle(true), config.Default(), logos)
	c := newContainer(t, 4000, 3000)

	require.NoError(t, w.Process(c))

	ratio, _ := BandRatios(4.0/3.0, 0)
	assert.Equal(t, 4000, c.Width())
	assert.InDelta(t, 3000+4000*ratio, c.Height(), 1)
	assert.Equal(t, photoColor, at(c.Image(), 2000, 2999), "photo occupies the top region")
	assert.Equal(t, imaging.White, at(c.Image(), 3999, c.Height()-1), "band background")
	assert.Equal(t, []string{"NIKON CORPORATION"}, logos.asked)
}

func TestWatermark_PortraitUsesTallerBand(t *testing.T) {
	w, _ := newTestWatermark(DefaultStyle(false), config.Default(), nil)
	c := newContainer(t, 600, 800)

	require.NoError(t, w.Process(c))

	ratio, _ := BandRatios(.75, 0)
	assert.Equal(t, 600, c.Width())
	assert.InDelta(t, 800+600*ratio, c.Height(), 1)
}

func TestWatermark_LogoDisabled(t *testing.T) {
	logos := &fakeLogos{}
	style := DefaultStyle(true)
	style.LogoEnable = false
	w, _ := newTestWatermark(style, config.Default(), logos)

	require.NoError(t, w.Process(newContainer(t, 400, 300)))
	assert.Empty(t, logos.asked)
}

func TestWatermark_DarkBackground(t *testing.T) {
	w, _ := newTestWatermark(DarkStyle(false), config.Default(), &fakeLogos{})
	c := newContainer(t, 400, 300)

	require.NoError(t, w.Process(c))
	assert.Equal(t, imaging.MustParseColor("#212121"), at(c.Image(), 0, c.Height()-1))
}

func TestWatermark_Errors(t *testing.T) {
	t.Run("logo failure", func(t *testing.T) {
		w, _ := newTestWatermark(DefaultStyle(true), config.Default(), &fakeLogos{err: errBoom})
		assert.ErrorIs(t, w.Process(newContainer(t, 40, 30)), errBoom)
	})

	t.Run("text failure", func(t *testing.T) {
		w := NewWatermark(WatermarkID, DefaultStyle(true), config.Default(), &fakeText{err: errBoom}, nil)
		assert.ErrorIs(t, w.Process(newContainer(t, 40, 30)), errBoom)
	})

	t.Run("no renderer", func(t *testing.T) {
		w := NewWatermark(WatermarkID, DefaultStyle(true), config.Default(), nil, nil)
		assert.ErrorIs(t, w.Process(newContainer(t, 40, 30)), ErrUnconfigured)
	})
}

func TestWatermark_RealFonts(t *testing.T) {
	r, err := text.NewRasterizer(text.FontSet{})
	require.NoError(t, err)

	w := NewWatermark(WatermarkLeftLogoID, DefaultStyle(true), config.Default(), r, nil)
	c := newContainer(t, 1200, 800)

	require.NoError(t, w.Process(c))
	assert.Equal(t, 1200, c.Width())
	assert.Greater(t, c.Height(), 800)
}

func TestCustomStyle(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.BackgroundColor = "#000000"
	cfg.Layout.LogoPosition = config.LogoRight
	cfg.Layout.LogoEnable = false
	cfg.Layout.Elements.LeftTop.Color = "#ff0000"

	s, err := CustomStyle(cfg)
	require.NoError(t, err)
	assert.Equal(t, imaging.Black, s.Background)
	assert.False(t, s.LogoLeft)
	assert.False(t, s.LogoEnable)
	assert.Equal(t, imaging.MustParseColor("#ff0000"), s.LeftTop.Color)
	assert.True(t, s.LeftTop.Bold)

	cfg.Layout.LineColor = "not-a-color"
	_, err = CustomStyle(cfg)
	assert.Error(t, err)
}
