package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// ApplyOrientation rotates and flips img according to an EXIF orientation tag
// (1-8) so that it displays upright. Unknown values leave img unchanged.
func ApplyOrientation(img image.Image, orientation int) *image.NRGBA {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}
