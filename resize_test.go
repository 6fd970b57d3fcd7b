package autostretch

import (
	"image"
	"testing"
)

func TestFitRaster(t *testing.T) {
	src := NewRaster(400, 200, 1)

	for _, name := range []string{"nearest", "bilinear", "bicubic", "mitchell", "lanczos2", "lanczos3"} {
		interp, err := ParseInterpolation(name)
		if err != nil {
			t.Fatal(err)
		}
		out := FitRaster(src, 100, 100, interp)
		if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("%s: got %dx%d, want 100x50", name, b.Dx(), b.Dy())
		}
	}

	if out := FitRaster(src, 800, 800, InterpolationNearest); out != image.Image(src) {
		t.Error("raster that fits must be returned unchanged")
	}

	if _, err := ParseInterpolation("sinc"); err == nil {
		t.Error("expected error for unknown interpolation")
	}
}

func TestScaleRaster(t *testing.T) {
	out := ScaleRaster(NewRaster(64, 32, 1), 16, 0, InterpolationBilinear)
	if b := out.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("got %dx%d, want 16x8", b.Dx(), b.Dy())
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("800x600")
	if err != nil {
		t.Fatal(err)
	}
	if w != 800 || h != 600 {
		t.Fatalf("got %dx%d", w, h)
	}
	for _, bad := range []string{"", "800", "0x10", "axb"} {
		if _, _, err := ParseSize(bad); err == nil {
			t.Errorf("ParseSize(%q): expected error", bad)
		}
	}
}
