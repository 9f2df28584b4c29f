package render

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"photobooth/internal/overlay"
	"photobooth/pkg/colorutil"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

type fakeStamps map[overlay.StampKind]image.Image

func (f fakeStamps) Image(kind overlay.StampKind) (image.Image, bool) {
	img, ok := f[kind]
	return img, ok
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func assertPixel(t *testing.T, img image.Image, x, y int, want color.NRGBA) {
	t.Helper()
	got := colorutil.ToNRGBA(img.At(x, y))
	near := func(a, b uint8) bool { return max(a, b)-min(a, b) < 4 }
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestRenderWithoutFrame(t *testing.T) {
	r := New(nil)
	img := r.Render(Scene{Canvas: image.Pt(200, 100), FrameSize: image.Pt(100, 60)})

	if got := img.Bounds().Size(); got != image.Pt(200, 100) {
		t.Fatalf("size = %v", got)
	}
	assertPixel(t, img, 0, 0, colorutil.Background)
	assertPixel(t, img, 49, 25, colorutil.Background)
	// Frame area [50,150) x [20,80) is black apart from the caption.
	assertPixel(t, img, 50, 20, colorutil.Black)
	assertPixel(t, img, 149, 79, colorutil.Black)
	assertPixel(t, img, 150, 25, colorutil.Background)
}

func TestRenderDrawsFrameCentered(t *testing.T) {
	r := New(nil)
	frame := solid(40, 40, blue)
	img := r.Render(Scene{Canvas: image.Pt(100, 100), FrameSize: image.Pt(40, 40), Frame: frame})

	assertPixel(t, img, 30, 30, blue)
	assertPixel(t, img, 69, 69, blue)
	assertPixel(t, img, 29, 30, colorutil.Background)
	assertPixel(t, img, 70, 69, colorutil.Background)
}

func TestRenderScalesMismatchedFrame(t *testing.T) {
	r := New(nil)
	frame := solid(20, 20, blue)
	img := r.Render(Scene{Canvas: image.Pt(100, 100), FrameSize: image.Pt(40, 40), Frame: frame})
	assertPixel(t, img, 50, 50, blue)
}

func TestDrawShapeNegativeExtents(t *testing.T) {
	style := overlay.Style{Fill: red, Border: blue, Thickness: overlay.ThicknessNone}
	tests := []struct {
		name string
		sh   overlay.Shape
	}{
		{"down-right", overlay.Shape{X: 10, Y: 10, W: 20, H: 20, Kind: overlay.ShapeRectangle, Style: style}},
		{"up-left", overlay.Shape{X: 30, Y: 30, W: -20, H: -20, Kind: overlay.ShapeRectangle, Style: style}},
		{"up-right", overlay.Shape{X: 10, Y: 30, W: 20, H: -20, Kind: overlay.ShapeRectangle, Style: style}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 40, 40))
			DrawShape(img, tt.sh)
			assertPixel(t, img, 11, 11, red)
			assertPixel(t, img, 28, 28, red)
			assertPixel(t, img, 5, 5, color.NRGBA{})
			assertPixel(t, img, 35, 35, color.NRGBA{})
		})
	}
}

func TestDrawShapeEllipseInscribed(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	DrawShape(img, overlay.Shape{
		X: 10, Y: 10, W: 40, H: 40,
		Kind:  overlay.ShapeEllipse,
		Style: overlay.Style{Fill: red},
	})
	assertPixel(t, img, 30, 30, red)
	// Box corners lie outside the inscribed ellipse.
	assertPixel(t, img, 11, 11, color.NRGBA{})
	assertPixel(t, img, 48, 48, color.NRGBA{})
}

func TestDrawShapeBorder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	DrawShape(img, overlay.Shape{
		X: 10, Y: 10, W: 40, H: 40,
		Kind:  overlay.ShapeRectangle,
		Style: overlay.Style{Fill: red, Border: blue, Thickness: 4},
	})
	assertPixel(t, img, 10, 30, blue)
	assertPixel(t, img, 30, 30, red)
	// Outer corners are square, not bevelled.
	assertPixel(t, img, 8, 8, blue)
	assertPixel(t, img, 51, 8, blue)
	assertPixel(t, img, 8, 51, blue)
	assertPixel(t, img, 51, 51, blue)
	assertPixel(t, img, 7, 7, color.NRGBA{})
}

func TestRenderOrder(t *testing.T) {
	stampImg := solid(10, 10, blue)
	r := New(fakeStamps{overlay.StampHat: stampImg})

	stamps := []overlay.Stamp{{Image: overlay.StampHat, X: 10, Y: 10}}
	shapes := []overlay.Shape{{
		X: 15, Y: 15, W: 10, H: 10,
		Kind:  overlay.ShapeRectangle,
		Style: overlay.Style{Fill: red},
	}}
	inProgress := overlay.Shape{
		X: 22, Y: 22, W: 6, H: 6,
		Kind:  overlay.ShapeRectangle,
		Style: overlay.Style{Fill: colorutil.White},
	}
	img := r.Render(Scene{
		Canvas:     image.Pt(40, 40),
		FrameSize:  image.Pt(40, 40),
		Frame:      solid(40, 40, colorutil.Black),
		Stamps:     slices.Values(stamps),
		Shapes:     slices.Values(shapes),
		InProgress: &inProgress,
	})

	assertPixel(t, img, 11, 11, blue)            // stamp only
	assertPixel(t, img, 17, 17, red)             // shape over stamp
	assertPixel(t, img, 24, 24, colorutil.White) // in-progress shape on top
	assertPixel(t, img, 35, 35, colorutil.Black) // frame
}

func TestRenderPreviewUnderPlacedStamps(t *testing.T) {
	r := New(fakeStamps{
		overlay.StampHat:     solid(10, 10, blue),
		overlay.StampGlasses: solid(10, 10, red),
	})
	img := r.Render(Scene{
		Canvas:    image.Pt(40, 40),
		FrameSize: image.Pt(40, 40),
		Frame:     solid(40, 40, colorutil.Black),
		Preview:   &Preview{Kind: overlay.StampGlasses, X: 5, Y: 5},
		Stamps:    slices.Values([]overlay.Stamp{{Image: overlay.StampHat, X: 10, Y: 10}}),
	})
	assertPixel(t, img, 6, 6, red)
	assertPixel(t, img, 12, 12, blue)
}

func TestRenderLeavesShapesUntouched(t *testing.T) {
	shapes := []overlay.Shape{{X: 5, Y: 5, W: -3, H: 4, Kind: overlay.ShapeEllipse}}
	New(nil).Render(Scene{
		Canvas:    image.Pt(20, 20),
		FrameSize: image.Pt(10, 10),
		Shapes:    slices.Values(shapes),
	})
	if shapes[0].W != -3 || shapes[0].H != 4 {
		t.Errorf("render modified shape: %+v", shapes[0])
	}
}
