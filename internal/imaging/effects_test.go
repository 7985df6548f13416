package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestBlur_KeepsSize(t *testing.T) {
	img := createInMemoryImage(30, 20, color.NRGBA{10, 20, 30, 255})
	img.Set(15, 10, color.NRGBA{255, 255, 255, 255})

	out := Blur(img, 3)
	if got := out.Bounds().Size(); got != image.Pt(30, 20) {
		t.Fatalf("size: got %v, want (30,20)", got)
	}
	if got := pixel(out, 15, 10); got.R == 255 {
		t.Error("bright pixel should be spread by the blur")
	}

	same := Blur(img, 0)
	if got := pixel(same, 15, 10); got.R != 255 {
		t.Errorf("zero radius should copy, got %v", got)
	}
}

func TestBlend_TowardWhite(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{0, 0, 0, 255})
	out := Blend(img, White, 0.1)

	got := pixel(out, 2, 2)
	if got.R < 24 || got.R > 27 {
		t.Errorf("10%% blend of black toward white: got R=%d, want ~25", got.R)
	}
}

func TestResizeHelpers(t *testing.T) {
	img := createInMemoryImage(200, 100, color.White)

	if got := ResizeToWidth(img, 50).Bounds().Size(); got != image.Pt(50, 25) {
		t.Errorf("ResizeToWidth: got %v, want (50,25)", got)
	}
	if got := ResizeToHeight(img, 10).Bounds().Size(); got != image.Pt(20, 10) {
		t.Errorf("ResizeToHeight: got %v, want (20,10)", got)
	}
	if got := Scale(img, 0.33).Bounds().Size(); got != image.Pt(66, 33) {
		t.Errorf("Scale: got %v, want (66,33)", got)
	}
}

func TestRoundCorners(t *testing.T) {
	img := createInMemoryImage(40, 30, color.NRGBA{255, 0, 0, 255})
	out := RoundCorners(img, 8)

	for _, p := range []image.Point{{0, 0}, {39, 0}, {0, 29}, {39, 29}} {
		if got := pixel(out, p.X, p.Y); got.A != 0 {
			t.Errorf("corner %v should be transparent, got %v", p, got)
		}
	}
	if got := pixel(out, 20, 15); got.A != 255 {
		t.Errorf("center should stay opaque, got %v", got)
	}
	if got := pixel(out, 8, 0); got.A != 255 {
		t.Errorf("edge past the arc should stay opaque, got %v", got)
	}
	if got := pixel(img, 0, 0); got.A != 255 {
		t.Error("source must not be modified")
	}
}

func TestSoftShadow_Geometry(t *testing.T) {
	img := createInMemoryImage(40, 30, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name       string
		radius     int
		offset     image.Point
		wantSize   image.Point
		wantOrigin image.Point
	}{
		{"positive offset", 15, image.Pt(5, 5), image.Pt(75, 65), image.Pt(15, 15)},
		{"negative offset", 10, image.Pt(-4, 6), image.Pt(64, 56), image.Pt(14, 10)},
		{"no blur", 0, image.Pt(0, 0), image.Pt(40, 30), image.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, origin := SoftShadow(img, tt.radius, tt.offset, 128)
			if got := canvas.Bounds().Size(); got != tt.wantSize {
				t.Errorf("size: got %v, want %v", got, tt.wantSize)
			}
			if origin != tt.wantOrigin {
				t.Errorf("origin: got %v, want %v", origin, tt.wantOrigin)
			}
			if got := pixel(canvas, origin.X+1, origin.Y+1); got.R != 255 || got.A != 255 {
				t.Errorf("image should be drawn at origin, got %v", got)
			}
		})
	}
}

func TestSoftShadow_CastsShadow(t *testing.T) {
	img := createInMemoryImage(20, 20, color.NRGBA{255, 255, 255, 255})
	canvas, origin := SoftShadow(img, 4, image.Pt(3, 3), 200)

	// Just past the image's bottom-right corner lies the offset shadow.
	got := pixel(canvas, origin.X+21, origin.Y+21)
	if got.A == 0 {
		t.Error("expected shadow alpha beyond the image edge")
	}
	if got.R > 50 {
		t.Errorf("shadow should be dark, got %v", got)
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createInMemoryImage(40, 20, color.White)
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		orientation int
		wantSize    image.Point
		redAt       image.Point
	}{
		{1, image.Pt(40, 20), image.Pt(0, 0)},
		{2, image.Pt(40, 20), image.Pt(39, 0)},
		{3, image.Pt(40, 20), image.Pt(39, 19)},
		{4, image.Pt(40, 20), image.Pt(0, 19)},
		{6, image.Pt(20, 40), image.Pt(19, 0)},
		{8, image.Pt(20, 40), image.Pt(0, 39)},
		{0, image.Pt(40, 20), image.Pt(0, 0)},
	}

	for _, tt := range tests {
		out := ApplyOrientation(img, tt.orientation)
		if got := out.Bounds().Size(); got != tt.wantSize {
			t.Errorf("orientation %d size: got %v, want %v", tt.orientation, got, tt.wantSize)
			continue
		}
		if got := pixel(out, tt.redAt.X, tt.redAt.Y); got.R != 255 || got.G != 0 {
			t.Errorf("orientation %d: marker not at %v (got %v)", tt.orientation, tt.redAt, got)
		}
	}
}

func TestPreview(t *testing.T) {
	img := createInMemoryImage(400, 100, color.White)

	res, err := Preview(img, 200)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if res.Width != 200 || res.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 200x50", res.Width, res.Height)
	}
	if res.MimeType != "image/png" || res.ImageBase64 == "" {
		t.Errorf("unexpected encoding result: %+v", res.MimeType)
	}

	small, err := Preview(createInMemoryImage(50, 10, color.White), 200)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if small.Width != 50 {
		t.Errorf("narrow image should not be upscaled, got width %d", small.Width)
	}

	if _, err := Preview(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 10); err == nil {
		t.Error("Preview of empty image should fail")
	}
}
