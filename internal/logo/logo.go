// Package logo resolves camera makes to logo bitmaps stored in a directory.
//
// A logo file matches a make when its lowercased file name without extension
// occurs in the lowercased make, so "nikon.png" serves "NIKON CORPORATION".
// When several files match, the longest name wins.
package logo

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
)

// DefaultCacheSize is used when NewLoader is given a non-positive size.
const DefaultCacheSize = 32

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Loader finds and decodes logos. Results, including misses, are cached per
// make. Loader is safe for concurrent use.
type Loader struct {
	dir   string
	cache *lru.Cache[string, image.Image]
}

// NewLoader returns a Loader reading from dir. An empty dir yields a Loader
// that never finds a logo.
func NewLoader(dir string, cacheSize int) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create logo cache: %w", err)
	}
	return &Loader{dir: dir, cache: cache}, nil
}

// Load returns the logo for a camera make, or nil when none exists. Only I/O and
// decoding failures of a matching file are errors.
func (l *Loader) Load(cameraMake string) (image.Image, error) {
	key := strings.ToLower(strings.TrimSpace(cameraMake))
	if key == "" || l.dir == "" {
		return nil, nil
	}
	if img, ok := l.cache.Get(key); ok {
		return img, nil
	}

	path, err := l.find(key)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if path != "" {
		src, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load logo for %q: %w", cameraMake, err)
		}
		img = src.Image
	}
	l.cache.Add(key, img)
	return img, nil
}

func (l *Loader) find(cameraMake string) (string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read logo directory: %w", err)
	}

	var best, bestStem string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !extensions[ext] {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		if stem == "" || !strings.Contains(cameraMake, stem) {
			continue
		}
		if len(stem) > len(bestStem) {
			best, bestStem = filepath.Join(l.dir, name), stem
		}
	}
	return best, nil
}
