package layout

import (
	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/processor"
)

// Default holds every built-in layout.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, l := range builtins {
		if err := r.Register(l.id, l.name, l.factory); err != nil {
			// Built-in ids are constants; a clash is a programming error.
			panic(err)
		}
	}
	return r
}

// BuildChain builds the chain for id from the default registry.
func BuildChain(id string, cfg *config.Config, deps Deps) (*processor.Chain, error) {
	return Default.BuildChain(id, cfg, deps)
}

// List returns the named built-in layouts.
func List() []Layout {
	return Default.Layouts()
}

func stage(c processor.Component) Factory {
	return func(*config.Config, Deps) (processor.Component, error) { return c, nil }
}

func watermark(id string, style func(bool) processor.WatermarkStyle, logoLeft bool) Factory {
	return func(cfg *config.Config, deps Deps) (processor.Component, error) {
		return processor.NewWatermark(id, style(logoLeft), cfg, deps.Text, deps.Logos), nil
	}
}

var builtins = []struct {
	id, name string
	factory  Factory
}{
	{processor.WatermarkLeftLogoID, "normal",
		watermark(processor.WatermarkLeftLogoID, processor.DefaultStyle, true)},
	{processor.WatermarkRightLogoID, "normal (logo right)",
		watermark(processor.WatermarkRightLogoID, processor.DefaultStyle, false)},
	{processor.DarkWatermarkLeftLogoID, "normal (dark)",
		watermark(processor.DarkWatermarkLeftLogoID, processor.DarkStyle, true)},
	{processor.DarkWatermarkRightLogoID, "normal (dark, logo right)",
		watermark(processor.DarkWatermarkRightLogoID, processor.DarkStyle, false)},
	{processor.CustomWatermarkID, "normal (custom)", func(cfg *config.Config, deps Deps) (processor.Component, error) {
		style, err := processor.CustomStyle(cfg)
		if err != nil {
			return nil, err
		}
		return processor.NewWatermark(processor.CustomWatermarkID, style, cfg, deps.Text, deps.Logos), nil
	}},
	{processor.SquareID, "1:1 padding", stage(processor.Square{})},
	{processor.SimpleID, "simple", func(_ *config.Config, deps Deps) (processor.Component, error) {
		return processor.NewSimple(deps.Text), nil
	}},
	{processor.BackgroundBlurID, "background blur", stage(processor.BackgroundBlur{})},
	{processor.BackgroundBlurWithWhiteBorderID, "background blur + white border", func(cfg *config.Config, _ Deps) (processor.Component, error) {
		return processor.BackgroundBlurWithWhiteBorder{Percent: cfg.WhiteMarginWidth()}, nil
	}},
	{processor.PureWhiteMarginID, "white margin", func(cfg *config.Config, _ Deps) (processor.Component, error) {
		return processor.PureWhiteMargin{Percent: cfg.WhiteMarginWidth()}, nil
	}},
	{processor.BackgroundBlurWithParamsID, "background blur + params", func(_ *config.Config, deps Deps) (processor.Component, error) {
		return processor.NewBackgroundBlurWithParams(deps.Text), nil
	}},

	{processor.EmptyID, "", stage(processor.Empty{})},
	{processor.ShadowID, "", stage(processor.Shadow{})},
	{processor.WatermarkID, "", watermark(processor.WatermarkID, processor.DefaultStyle, true)},
	{processor.MarginID, "", func(cfg *config.Config, _ Deps) (processor.Component, error) {
		bg, err := imaging.ParseColor(cfg.BackgroundColor())
		if err != nil {
			return nil, err
		}
		return processor.Margin{Percent: cfg.WhiteMarginWidth(), Color: bg}, nil
	}},
	{processor.PaddingToOriginalRatioID, "", stage(processor.PaddingToOriginalRatio{})},
}
