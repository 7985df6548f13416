package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage writes a solid-color PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache(0)
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.Len() != 0 {
		t.Fatalf("new cache should be empty, has %d entries", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache(4)
	imgPath := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	src1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if src1.Format != "png" {
		t.Errorf("Format: got %s, want png", src1.Format)
	}
	b := src1.Image.Bounds()
	if b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", b.Dx(), b.Dy())
	}
	if len(src1.Raw) == 0 {
		t.Error("raw bytes were not kept")
	}

	src2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if src1 != src2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache(4)
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cache := NewImageCache(4)
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewImageCache(2)
	dir := t.TempDir()

	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		f, err := os.Create(paths[i])
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := png.Encode(f, createInMemoryImage(4, 4, color.White)); err != nil {
			t.Fatalf("encode: %v", err)
		}
		f.Close()
	}

	for _, p := range paths {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load(%s): %v", p, err)
		}
	}
	if cache.Len() != 2 {
		t.Errorf("Len: got %d, want 2", cache.Len())
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache(4)
	imgPath := createTestImage(t, 10, 10, color.White)

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(imgPath)
	if cache.Len() != 0 {
		t.Errorf("Evict left %d entries", cache.Len())
	}

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Clear left %d entries", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache(4)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent load error: %v", err)
	}
}

func TestSourceInfo(t *testing.T) {
	imgPath := createTestImage(t, 120, 60, color.RGBA{0, 255, 0, 255})

	src, err := Open(imgPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	info := src.Info()

	if info.Width != 120 || info.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 120x60", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	stat, _ := os.Stat(imgPath)
	if info.FileSizeBytes != stat.Size() {
		t.Errorf("FileSizeBytes: got %d, want %d", info.FileSizeBytes, stat.Size())
	}
}

func TestSave_JPEGAndPNG(t *testing.T) {
	img := createInMemoryImage(30, 20, color.RGBA{200, 100, 50, 255})
	dir := t.TempDir()

	for _, name := range []string{"out/a.jpg", "out/b.png"} {
		path := filepath.Join(dir, name)
		if err := Save(img, path, 90); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		src, err := Open(path)
		if err != nil {
			t.Fatalf("reopen %s: %v", name, err)
		}
		if got := src.Image.Bounds().Size(); got != image.Pt(30, 20) {
			t.Errorf("%s size: got %v, want (30,20)", name, got)
		}
	}
}
