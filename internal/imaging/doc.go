// Package imaging provides the raster primitives used by the watermark stages.
//
// The functions here are stateless: they take images and return new ones, and
// never modify their inputs unless the name says so (Paste, Overlay and
// AppendBySide draw into the destination they are given). All results are
// *image.NRGBA with bounds starting at (0,0).
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, Y increases downward
//   - Rectangles are inclusive at Min and exclusive at Max
//
// # Primitives
//
//   - Color specifications: ParseColor
//   - Canvas building: Fill, Pad, Paste, Overlay, AlphaComposite, Concatenate,
//     Merge, AppendBySide, Square, Flatten
//   - Effects: Blur, Blend, RoundCorners, SoftShadow
//   - Geometry: Resize, ResizeToWidth, ResizeToHeight, Scale, ApplyOrientation
//   - I/O: ImageCache, Open, Save, Preview
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Every other function is safe to call
// concurrently on different destination images.
package imaging
