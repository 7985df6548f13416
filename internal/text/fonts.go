package text

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
)

// ErrMissingFont is returned when a configured font file cannot be read.
var ErrMissingFont = errors.New("font file not found")

// FontSet names the four font files a Rasterizer draws with. Empty primary
// paths fall back to the embedded Go fonts; empty alternative paths fall back
// to the primary fonts.
type FontSet struct {
	Regular            string
	Bold               string
	AlternativeRegular string
	AlternativeBold    string
	// Size is the em size in pixels used for every rendering.
	Size float64
}

// FontSetFromConfig extracts the font settings of a Config.
func FontSetFromConfig(base config.BaseConfig) FontSet {
	return FontSet{
		Regular:            base.Font,
		Bold:               base.BoldFont,
		AlternativeRegular: base.AlternativeFont,
		AlternativeBold:    base.AlternativeBoldFont,
		Size:               base.FontSize,
	}
}

// loadFont parses the TrueType font at path, or fallback when path is empty.
func loadFont(path string, fallback []byte) (*truetype.Font, error) {
	data := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrMissingFont, path)
			}
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		data = b
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", path, err)
	}
	return f, nil
}

var (
	embeddedRegular = goregular.TTF
	embeddedBold    = gobold.TTF
)
