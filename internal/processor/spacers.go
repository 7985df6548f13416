package processor

import (
	"image"
	"sync"

	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
)

// NormalHeight is the height at which watermark bands are laid out before
// being scaled to the photo width.
const NormalHeight = 1000

// Shared transparent spacers. They are built on first use and only ever read.
var (
	middleHorizontalGap = sync.OnceValue(func() image.Image {
		return imaging.Fill(100, 20, imaging.Transparent)
	})
	middleVerticalGap = sync.OnceValue(func() image.Image {
		return imaging.Fill(20, 100, imaging.Transparent)
	})
	transparentLine = sync.OnceValue(func() image.Image {
		return imaging.Fill(lineWidth, NormalHeight, imaging.Transparent)
	})
)

const (
	lineWidth = 20

	// columnGapWidth x columnGapHeight is the spacer between the two lines of
	// a watermark text column.
	columnGapWidth  = 10
	columnGapHeight = 100

	// sidePadding is the distance between the band edges and its content.
	sidePadding = 200
)
