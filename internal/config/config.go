// Package config holds the per-run settings consumed by the watermark stages.
//
// A Config is loaded once (YAML file plus environment overrides) and treated as
// immutable afterwards. Stages only read from it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
)

// Logo positions accepted by LayoutConfig.LogoPosition.
const (
	LogoLeft  = "left"
	LogoRight = "right"
)

// Config is the root configuration document.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Base   BaseConfig   `yaml:"base"`
	Global GlobalConfig `yaml:"global"`
	Logo   LogoConfig   `yaml:"logo"`
	Log    LogConfig    `yaml:"log"`
}

// LayoutConfig selects the layout and the look of the watermark band.
type LayoutConfig struct {
	Type            string   `yaml:"type" env:"WATERMARK_LAYOUT"`
	BackgroundColor string   `yaml:"background_color" env:"WATERMARK_BACKGROUND_COLOR"`
	LineColor       string   `yaml:"line_color"`
	LogoEnable      bool     `yaml:"logo_enable" env:"WATERMARK_LOGO_ENABLE"`
	LogoPosition    string   `yaml:"logo_position" env:"WATERMARK_LOGO_POSITION"`
	Elements        Elements `yaml:"elements"`
}

// Elements are the four text quadrants of the watermark band.
type Elements struct {
	LeftTop     Element `yaml:"left_top"`
	LeftBottom  Element `yaml:"left_bottom"`
	RightTop    Element `yaml:"right_top"`
	RightBottom Element `yaml:"right_bottom"`
}

// Element describes what one quadrant shows and how it is styled.
type Element struct {
	// Name is a selector such as Model or Param, see the constants in elements.go.
	Name string `yaml:"name"`
	// Value is the literal text used when Name is Custom.
	Value  string `yaml:"value"`
	Color  string `yaml:"color"`
	IsBold bool   `yaml:"is_bold"`
}

// BaseConfig holds fonts and output settings.
type BaseConfig struct {
	Font                string  `yaml:"font" env:"WATERMARK_FONT"`
	BoldFont            string  `yaml:"bold_font" env:"WATERMARK_BOLD_FONT"`
	AlternativeFont     string  `yaml:"alternative_font"`
	AlternativeBoldFont string  `yaml:"alternative_bold_font"`
	FontSize            float64 `yaml:"font_size"`
	Quality             int     `yaml:"quality" env:"WATERMARK_QUALITY"`
}

// GlobalConfig toggles the stages wrapped around every layout.
type GlobalConfig struct {
	WhiteMargin struct {
		Enable bool `yaml:"enable"`
		// Width is a percentage of the shorter image side.
		Width int `yaml:"width"`
	} `yaml:"white_margin"`
	PaddingWithOriginalRatio struct {
		Enable bool `yaml:"enable"`
	} `yaml:"padding_with_original_ratio"`
	Shadow struct {
		Enable bool `yaml:"enable"`
	} `yaml:"shadow"`
	FocalLength struct {
		UseEquivalentFocalLength bool `yaml:"use_equivalent_focal_length"`
	} `yaml:"focal_length"`
	FontPaddingLevel int `yaml:"font_padding_level"`
}

// LogoConfig locates the logo assets.
type LogoConfig struct {
	Dir       string `yaml:"dir" env:"WATERMARK_LOGO_DIR"`
	CacheSize int    `yaml:"cache_size"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level      string `yaml:"level" env:"WATERMARK_LOG_LEVEL"`
	Format     string `yaml:"format"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Layout: LayoutConfig{
			Type:            "watermark_left_logo",
			BackgroundColor: "#ffffff",
			LineColor:       "#CBCBC9",
			LogoEnable:      true,
			LogoPosition:    LogoLeft,
			Elements: Elements{
				LeftTop:     Element{Name: ModelValue, Color: "#212121", IsBold: true},
				LeftBottom:  Element{Name: MakeValue, Color: "#424242"},
				RightTop:    Element{Name: ParamValue, Color: "#212121", IsBold: true},
				RightBottom: Element{Name: DatetimeValue, Color: "#424242"},
			},
		},
		Base: BaseConfig{
			FontSize: 240,
			Quality:  100,
		},
		Logo: LogoConfig{CacheSize: 64},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
	cfg.Global.WhiteMargin.Width = 3
	return cfg
}

// Load reads path (when non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants stages rely on.
func (c *Config) Validate() error {
	var errs []error

	colors := map[string]string{
		"layout.background_color":            c.Layout.BackgroundColor,
		"layout.line_color":                  c.Layout.LineColor,
		"layout.elements.left_top.color":     c.Layout.Elements.LeftTop.Color,
		"layout.elements.left_bottom.color":  c.Layout.Elements.LeftBottom.Color,
		"layout.elements.right_top.color":    c.Layout.Elements.RightTop.Color,
		"layout.elements.right_bottom.color": c.Layout.Elements.RightBottom.Color,
	}
	for key, value := range colors {
		if _, err := imaging.ParseColor(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if c.Layout.LogoPosition != LogoLeft && c.Layout.LogoPosition != LogoRight {
		errs = append(errs, fmt.Errorf("layout.logo_position: must be %q or %q, got %q", LogoLeft, LogoRight, c.Layout.LogoPosition))
	}
	if w := c.Global.WhiteMargin.Width; w < 0 || w > 100 {
		errs = append(errs, fmt.Errorf("global.white_margin.width: must be within [0,100], got %d", w))
	}
	if c.Base.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("base.font_size: must be positive, got %v", c.Base.FontSize))
	}
	if q := c.Base.Quality; q < 1 || q > 100 {
		errs = append(errs, fmt.Errorf("base.quality: must be within [1,100], got %d", q))
	}

	// Keeps the landscape padding ratio (.52 - .04*level) and the landscape
	// band ratio (.04 + .02*level) positive.
	if lvl := c.Global.FontPaddingLevel; lvl <= -2 || lvl >= 13 {
		errs = append(errs, fmt.Errorf("global.font_padding_level: must be within [-1,12], got %d", lvl))
	}

	return errors.Join(errs...)
}

// BackgroundColor returns the configured band background color.
func (c *Config) BackgroundColor() string { return c.Layout.BackgroundColor }

// LineColor returns the color of the logo divider line.
func (c *Config) LineColor() string { return c.Layout.LineColor }

// HasLogoEnabled reports whether the watermark band shows a logo.
func (c *Config) HasLogoEnabled() bool { return c.Layout.LogoEnable }

// IsLogoLeft reports whether the logo sits on the left of the band.
func (c *Config) IsLogoLeft() bool { return c.Layout.LogoPosition == LogoLeft }

// LeftTop returns the left-top quadrant element.
func (c *Config) LeftTop() Element { return c.Layout.Elements.LeftTop }

// LeftBottom returns the left-bottom quadrant element.
func (c *Config) LeftBottom() Element { return c.Layout.Elements.LeftBottom }

// RightTop returns the right-top quadrant element.
func (c *Config) RightTop() Element { return c.Layout.Elements.RightTop }

// RightBottom returns the right-bottom quadrant element.
func (c *Config) RightBottom() Element { return c.Layout.Elements.RightBottom }

// WhiteMarginWidth returns the margin width as a percentage.
func (c *Config) WhiteMarginWidth() int { return c.Global.WhiteMargin.Width }

// FontPaddingLevel returns the bias applied to the watermark ratios.
func (c *Config) FontPaddingLevel() int { return c.Global.FontPaddingLevel }
