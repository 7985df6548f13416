package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette entries shared by the watermark layouts.
var (
	Transparent = color.NRGBA{0, 0, 0, 0}
	White       = color.NRGBA{255, 255, 255, 255}
	Black       = color.NRGBA{0, 0, 0, 255}
	Gray        = color.NRGBA{0xCB, 0xCB, 0xC9, 255}
)

var namedColors = map[string]color.NRGBA{
	"transparent": Transparent,
	"white":       White,
	"black":       Black,
	"gray":        Gray,
	"grey":        Gray,
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
}

// ParseColor converts a color specification into an opaque or translucent
// NRGBA value.
//
// Accepted forms:
//   - a name: white, black, gray, grey, red, green, blue, transparent
//   - "#RGB" or "#RRGGBB" (leading '#' required)
//   - "#RRGGBBAA" with an explicit alpha byte
func ParseColor(spec string) (color.NRGBA, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", spec)
	}

	if len(s) == 9 {
		val, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
		}
		return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}

	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: unexpected length", spec)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParseColor is ParseColor for compile-time constants. It panics on error.
func MustParseColor(spec string) color.NRGBA {
	c, err := ParseColor(spec)
	if err != nil {
		panic(err)
	}
	return c
}
