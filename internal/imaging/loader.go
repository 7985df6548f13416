package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of decoded images an ImageCache keeps when
// constructed with a non-positive size.
const DefaultCacheSize = 16

// Source is a decoded image together with the raw file bytes it came from.
//
// The raw bytes are kept so that metadata readers (EXIF) can run against the
// original file without a second disk read.
type Source struct {
	Path   string
	Image  image.Image
	Format string
	Raw    []byte
}

// ImageCache provides thread-safe, size-bounded caching of decoded images.
//
// Entries are keyed by the exact path string passed to Load. When the cache is
// full the least recently used entry is evicted. ImageCache is safe for
// concurrent use; the cached Source values must be treated as read-only.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(32)
//	src, err := cache.Load("/photos/DSC_0001.jpg")
//	if err != nil {
//	    return err
//	}
//	// Use src.Image...
//	cache.Evict("/photos/DSC_0001.jpg") // Optional: free memory
type ImageCache struct {
	entries *lru.Cache[string, *Source]
}

// NewImageCache creates an empty cache holding at most size images.
func NewImageCache(size int) *ImageCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, *Source](size)
	if err != nil {
		// lru.New only fails for non-positive sizes, excluded above.
		panic(err)
	}
	return &ImageCache{entries: entries}
}

// Load retrieves an image from the cache or reads and decodes it from disk.
//
// Supported formats are PNG, JPEG and GIF. Pixels are returned exactly as
// stored; EXIF orientation is not applied here.
func (c *ImageCache) Load(path string) (*Source, error) {
	if src, ok := c.entries.Get(path); ok {
		return src, nil
	}

	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(path, src)
	return src, nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.entries.Remove(path)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.entries.Purge()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	return c.entries.Len()
}

// Open reads and decodes the image at path without caching it.
func Open(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return &Source{Path: path, Image: img, Format: format, Raw: raw}, nil
}

// Save encodes img to path. The format follows the file extension (JPEG,
// PNG, GIF, TIFF or BMP); quality only affects JPEG output.
func Save(img image.Image, path string, quality int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that read the file: "png", "jpeg" or "gif".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info describes a decoded Source.
func (s *Source) Info() *ImageInfo {
	b := s.Image.Bounds()

	hasAlpha := false
	switch s.Image.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        s.Format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: int64(len(s.Raw)),
	}
}
