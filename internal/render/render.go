// Package render composes one canvas frame: background, live video, stamp
// preview, placed stamps, committed shapes and the shape being drawn.
// Rendering reads overlay state and never changes it.
package render

import (
	"image"
	"image/color"
	"iter"

	"photobooth/internal/overlay"
	"photobooth/pkg/colorutil"
	"photobooth/pkg/geometry"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// WaitingCaption is drawn over the frame area until the first frame arrives.
const WaitingCaption = "waiting for camera"

// StampImages resolves a stamp kind to its drawing-size image.
type StampImages interface {
	Image(kind overlay.StampKind) (image.Image, bool)
}

// Preview is the armed stamp following the pointer.
type Preview struct {
	Kind overlay.StampKind
	X, Y float64
}

// Scene is everything one frame draws. Frame is nil until the video source
// produces a frame.
type Scene struct {
	Canvas     image.Point
	FrameSize  image.Point
	Frame      image.Image
	Preview    *Preview
	Stamps     iter.Seq[overlay.Stamp]
	Shapes     iter.Seq[overlay.Shape]
	InProgress *overlay.Shape
}

// FrameRect returns the capture frame's pixel rectangle inside the canvas.
func (s Scene) FrameRect() image.Rectangle {
	r := geometry.Centered(
		geometry.NewSize(float64(s.Canvas.X), float64(s.Canvas.Y)),
		geometry.NewSize(float64(s.FrameSize.X), float64(s.FrameSize.Y)),
	)
	return r.ImageRect()
}

// Renderer draws scenes.
type Renderer struct {
	stamps     StampImages
	background color.NRGBA
}

// New creates a renderer that looks stamp images up in stamps.
func New(stamps StampImages) *Renderer {
	return &Renderer{
		stamps:     stamps,
		background: colorutil.Background,
	}
}

// SetBackground changes the colour around the capture frame.
func (r *Renderer) SetBackground(c color.NRGBA) {
	r.background = c
}

// Render draws s into a new image of the canvas size.
func (r *Renderer) Render(s Scene) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: s.Canvas})
	r.RenderInto(dst, s)
	return dst
}

// RenderInto draws s over dst, which should be the canvas size.
func (r *Renderer) RenderInto(dst *image.RGBA, s Scene) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
	r.drawFrame(dst, s)

	if s.Preview != nil {
		r.drawStamp(dst, s.Preview.Kind, s.Preview.X, s.Preview.Y)
	}
	if s.Stamps != nil {
		for st := range s.Stamps {
			r.drawStamp(dst, st.Image, st.X, st.Y)
		}
	}
	if s.Shapes != nil {
		for sh := range s.Shapes {
			DrawShape(dst, sh)
		}
	}
	if s.InProgress != nil {
		DrawShape(dst, *s.InProgress)
	}
}

func (r *Renderer) drawFrame(dst *image.RGBA, s Scene) {
	fr := s.FrameRect()
	if s.Frame == nil {
		draw.Draw(dst, fr, image.NewUniform(colorutil.Black), image.Point{}, draw.Src)
		drawCaption(dst, fr, WaitingCaption)
		return
	}
	if s.Frame.Bounds().Size() == fr.Size() {
		draw.Draw(dst, fr, s.Frame, s.Frame.Bounds().Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(dst, fr, s.Frame, s.Frame.Bounds(), draw.Src, nil)
}

// drawStamp draws the stamp with its top-left corner at (x, y).
func (r *Renderer) drawStamp(dst *image.RGBA, kind overlay.StampKind, x, y float64) {
	if r.stamps == nil {
		return
	}
	img, ok := r.stamps.Image(kind)
	if !ok {
		return
	}
	origin := image.Pt(int(x), int(y))
	rect := image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}
	draw.Draw(dst, rect, img, img.Bounds().Min, draw.Over)
}

// drawCaption centers text in r using the built-in 7x13 bitmap font.
func drawCaption(dst *image.RGBA, r image.Rectangle, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorutil.White),
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(text).Round()
	x := r.Min.X + (r.Dx()-width)/2
	y := r.Min.Y + (r.Dy()+basicfont.Face7x13.Ascent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
