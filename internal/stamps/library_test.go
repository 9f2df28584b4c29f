package stamps

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"photobooth/internal/overlay"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirScalesAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hat.png"), 34, 30, color.NRGBA{R: 255, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "glasses.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	size := image.Pt(170, 150)
	lib := LoadDir(dir, map[overlay.StampKind]string{
		overlay.StampHat:     "hat.png",
		overlay.StampGlasses: "glasses.png",
		// moustache is missing from disk, santa is not configured
		overlay.StampMoustache: "moustache.png",
	}, size)

	for _, kind := range overlay.StampKinds() {
		img, ok := lib.Image(kind)
		if !ok {
			t.Errorf("%s: no image", kind)
			continue
		}
		if got := img.Bounds().Size(); got != size {
			t.Errorf("%s: size = %v, want %v", kind, got, size)
		}
	}

	hat, _ := lib.Image(overlay.StampHat)
	r, g, b, a := hat.At(85, 75).RGBA()
	if r>>8 < 250 || g>>8 > 5 || b>>8 > 5 || a>>8 < 250 {
		t.Errorf("hat center = %d,%d,%d,%d, want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hat.png")
	lib := NewLibrary(image.Pt(8, 8))
	lib.Set(overlay.StampHat, Placeholder(overlay.StampHat, image.Pt(8, 8)))

	if err := lib.Reload(overlay.StampHat, path); err == nil {
		t.Fatal("expected error reloading a missing file")
	}
	if _, ok := lib.Image(overlay.StampHat); !ok {
		t.Fatal("failed reload dropped the current image")
	}

	writePNG(t, path, 8, 8, color.NRGBA{G: 255, A: 255})
	if err := lib.Reload(overlay.StampHat, path); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	img, _ := lib.Image(overlay.StampHat)
	if _, g, _, _ := img.At(4, 4).RGBA(); g>>8 != 255 {
		t.Errorf("reloaded image not used")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScaleKeepsMatchingSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	if got := Scale(src, image.Pt(10, 10)); got != image.Image(src) {
		t.Error("Scale copied an image already at size")
	}
}

func TestPlaceholderOutline(t *testing.T) {
	img := Placeholder(overlay.StampHat, image.Pt(20, 10))
	if img.NRGBAAt(0, 0).A != 255 {
		t.Errorf("outline alpha = %d", img.NRGBAAt(0, 0).A)
	}
	if img.NRGBAAt(10, 5).A != 96 {
		t.Errorf("interior alpha = %d", img.NRGBAAt(10, 5).A)
	}
}

func TestIsSupportedFormat(t *testing.T) {
	tests := map[string]bool{
		"hat.png":   true,
		"HAT.JPG":   true,
		"scan.tiff": true,
		"notes.txt": false,
		"noext":     false,
	}
	for path, want := range tests {
		if got := IsSupportedFormat(path); got != want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", path, got, want)
		}
	}
}
