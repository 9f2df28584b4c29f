package export

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: DefaultName, want: FormatPNG},
		{path: "shot.JPG", want: FormatJPEG},
		{path: "shot.jpeg", want: FormatJPEG},
		{path: "shot.pdf", want: FormatPDF},
		{path: "shot.gif", wantErr: true},
		{path: "shot", wantErr: true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("FormatFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCrop(t *testing.T) {
	img := testImage()
	got := Crop(img, image.Rect(20, 10, 60, 40))

	if got.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c.R != 20 || c.G != 10 {
		t.Errorf("origin pixel = %v, want R=20 G=10", c)
	}

	// Crop is a copy.
	got.Set(0, 0, color.RGBA{B: 255, A: 255})
	if img.RGBAAt(20, 10).B != 0 {
		t.Error("crop shares pixels with source")
	}

	// Regions past the edge are clipped.
	if b := Crop(img, image.Rect(80, 70, 120, 100)).Bounds(); b != image.Rect(0, 0, 20, 10) {
		t.Errorf("clipped bounds = %v", b)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, DefaultName)
		if err := Save(path, img); err != nil {
			t.Fatalf("Save: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		decoded, err := png.Decode(f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Errorf("bounds = %v", decoded.Bounds())
		}
		r, g, _, _ := decoded.At(50, 40).RGBA()
		if r>>8 != 50 || g>>8 != 40 {
			t.Errorf("pixel = %d,%d", r>>8, g>>8)
		}
	})

	t.Run("jpeg", func(t *testing.T) {
		path := filepath.Join(dir, "shot.jpg")
		if err := Save(path, img); err != nil {
			t.Fatalf("Save: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode config: %v", err)
		}
		if cfg.Width != 100 || cfg.Height != 80 {
			t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("pdf", func(t *testing.T) {
		path := filepath.Join(dir, "shot.pdf")
		if err := Save(path, img); err != nil {
			t.Fatalf("Save: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("missing PDF header: %q", data[:min(len(data), 8)])
		}
	})

	t.Run("errors", func(t *testing.T) {
		if err := Save(filepath.Join(dir, "shot.bmp"), img); err == nil {
			t.Error("expected unsupported format error")
		}
		if err := Save(filepath.Join(dir, "empty.png"), image.NewRGBA(image.Rectangle{})); err == nil {
			t.Error("expected empty image error")
		}
		if err := Save(filepath.Join(dir, "missing", "shot.png"), img); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
