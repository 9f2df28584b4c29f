// Package stamps loads the stamp images and scales them to drawing size.
package stamps

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"photobooth/internal/overlay"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Library holds one pre-scaled image per stamp kind. It is safe for
// concurrent use so stamps can be reloaded while frames render.
type Library struct {
	size image.Point

	mu     sync.RWMutex
	images map[overlay.StampKind]image.Image
}

// NewLibrary creates an empty library whose stamps are drawn at size.
func NewLibrary(size image.Point) *Library {
	return &Library{
		size:   size,
		images: make(map[overlay.StampKind]image.Image),
	}
}

// LoadDir loads every file in files from dir. A file that cannot be loaded
// is replaced with a placeholder and logged; the library is always usable.
func LoadDir(dir string, files map[overlay.StampKind]string, size image.Point) *Library {
	lib := NewLibrary(size)
	for _, kind := range overlay.StampKinds() {
		name, ok := files[kind]
		if !ok {
			log.Printf("stamps: no file configured for %s, using placeholder", kind)
			lib.Set(kind, Placeholder(kind, size))
			continue
		}
		img, err := Load(filepath.Join(dir, name))
		if err != nil {
			log.Printf("stamps: %v, using placeholder", err)
			lib.Set(kind, Placeholder(kind, size))
			continue
		}
		lib.Set(kind, img)
	}
	return lib
}

// Load decodes an image file. PNG, JPEG and TIFF are supported.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stamp %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stamp %s: %w", path, err)
	}
	return img, nil
}

// Set stores img for kind, scaled to the library's stamp size.
func (l *Library) Set(kind overlay.StampKind, img image.Image) {
	scaled := Scale(img, l.size)
	l.mu.Lock()
	l.images[kind] = scaled
	l.mu.Unlock()
}

// Reload replaces kind's image with the file at path. On error the
// current image is kept.
func (l *Library) Reload(kind overlay.StampKind, path string) error {
	img, err := Load(path)
	if err != nil {
		return err
	}
	l.Set(kind, img)
	return nil
}

// Image returns the scaled image for kind.
func (l *Library) Image(kind overlay.StampKind) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[kind]
	return img, ok
}

// Size returns the drawing size of every stamp.
func (l *Library) Size() image.Point {
	return l.size
}

// Scale resamples img to exactly size. Images already at size are returned
// unchanged.
func Scale(img image.Image, size image.Point) image.Image {
	if img.Bounds().Size() == size {
		return img
	}
	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Placeholder generates a translucent tinted box standing in for a stamp
// whose image is missing.
func Placeholder(kind overlay.StampKind, size image.Point) *image.NRGBA {
	tint := placeholderTint(kind)
	img := image.NewNRGBA(image.Rectangle{Max: size})
	fill := tint
	fill.A = 96
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	// 2px solid outline
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if x < 2 || y < 2 || x >= size.X-2 || y >= size.Y-2 {
				img.SetNRGBA(x, y, tint)
			}
		}
	}
	return img
}

func placeholderTint(kind overlay.StampKind) color.NRGBA {
	switch kind {
	case overlay.StampGlasses:
		return color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	case overlay.StampHat:
		return color.NRGBA{R: 30, G: 60, B: 200, A: 255}
	case overlay.StampMoustache:
		return color.NRGBA{R: 110, G: 70, B: 30, A: 255}
	case overlay.StampSanta:
		return color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	default:
		return color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

// SupportedFormats returns the list of supported image file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}
}

// IsSupportedFormat checks if the file extension is supported.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range SupportedFormats() {
		if ext == f {
			return true
		}
	}
	return false
}
