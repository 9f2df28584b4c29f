// Package canvas provides the booth canvas: the live frame with stamps and
// shapes drawn over it, and the pointer handling that places them.
package canvas

import (
	"image"

	"photobooth/internal/app"
	"photobooth/internal/interaction"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoothCanvas renders the session and forwards pointer input to it.
// Coordinates passed to the session are device independent pixels
// relative to the canvas's top-left corner.
type BoothCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster
}

var (
	_ fyne.Tappable     = (*BoothCanvas)(nil)
	_ fyne.Draggable    = (*BoothCanvas)(nil)
	_ desktop.Mouseable = (*BoothCanvas)(nil)
	_ desktop.Hoverable = (*BoothCanvas)(nil)
)

// NewBoothCanvas creates a canvas drawing state. minSize is usually the
// capture frame size so the whole frame is visible.
func NewBoothCanvas(state *app.State, minSize fyne.Size) *BoothCanvas {
	bc := &BoothCanvas{state: state}

	bc.raster = fynecanvas.NewRaster(bc.draw)
	bc.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	bc.raster.SetMinSize(minSize)

	bc.ExtendBaseWidget(bc)
	return bc
}

// draw renders at the widget's logical size so pointer coordinates and
// drawing coordinates agree at any display scale. Fyne stretches the
// result over the w x h physical pixels.
func (bc *BoothCanvas) draw(w, h int) image.Image {
	size := bc.Size()
	cw, ch := int(size.Width), int(size.Height)
	if cw <= 0 || ch <= 0 {
		cw, ch = w, h
	}
	return bc.state.RenderFrame(cw, ch)
}

// Resize keeps the session's bounds in step with the widget.
func (bc *BoothCanvas) Resize(size fyne.Size) {
	bc.BaseWidget.Resize(size)
	bc.state.Resize(int(size.Width), int(size.Height))
}

// inside is a workaround for Fyne delivering events positioned outside
// the widget.
func (bc *BoothCanvas) inside(pos fyne.Position) bool {
	size := bc.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}

// Tapped places the armed stamp.
func (bc *BoothCanvas) Tapped(ev *fyne.PointEvent) {
	if !bc.inside(ev.Position) {
		return
	}
	bc.state.OnPointerClick(float64(ev.Position.X), float64(ev.Position.Y))
	bc.Refresh()
}

// MouseDown starts a shape.
func (bc *BoothCanvas) MouseDown(ev *desktop.MouseEvent) {
	if bc.state.OnPointerPress(float64(ev.Position.X), float64(ev.Position.Y), buttonOf(ev.Button)) {
		bc.Refresh()
	}
}

// MouseUp commits the shape in progress.
func (bc *BoothCanvas) MouseUp(*desktop.MouseEvent) {
	bc.state.OnPointerRelease()
	bc.Refresh()
}

// Dragged stretches the shape in progress.
func (bc *BoothCanvas) Dragged(ev *fyne.DragEvent) {
	if bc.state.OnPointerDrag(float64(ev.Position.X), float64(ev.Position.Y)) {
		bc.Refresh()
	}
}

// DragEnd commits the shape in progress. MouseUp usually gets there first,
// in which case this does nothing.
func (bc *BoothCanvas) DragEnd() {
	bc.state.OnPointerRelease()
	bc.Refresh()
}

// MouseIn starts the stamp preview.
func (bc *BoothCanvas) MouseIn(ev *desktop.MouseEvent) {
	bc.state.OnPointerMove(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseMoved moves the stamp preview.
func (bc *BoothCanvas) MouseMoved(ev *desktop.MouseEvent) {
	bc.state.OnPointerMove(float64(ev.Position.X), float64(ev.Position.Y))
	if bc.state.Mode().Stamp.Valid() {
		bc.Refresh()
	}
}

// MouseOut hides the stamp preview.
func (bc *BoothCanvas) MouseOut() {
	bc.state.OnPointerLeave()
	bc.Refresh()
}

func buttonOf(b desktop.MouseButton) interaction.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return interaction.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return interaction.ButtonTertiary
	default:
		return interaction.ButtonPrimary
	}
}

// CreateRenderer implements fyne.Widget.
func (bc *BoothCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &boothCanvasRenderer{canvas: bc}
}

type boothCanvasRenderer struct {
	canvas *BoothCanvas
}

func (r *boothCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *boothCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.raster.MinSize()
}

func (r *boothCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *boothCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *boothCanvasRenderer) Destroy() {}
