// Package interaction turns mode selections and pointer gestures into
// stamps and shapes.
//
// Two independent sub-machines share one pointer stream. The shape
// sub-machine goes Idle -> Armed(kind) -> Drawing -> Armed(kind): once a kind
// is armed it stays armed, so shapes can be drawn back to back. The stamp
// sub-machine goes Idle -> Armed(image) -> Idle, leaving the armed state only
// when a click lands inside the capture frame.
package interaction

import (
	"photobooth/internal/overlay"
	"photobooth/pkg/geometry"
)

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// StyleSource supplies the border and fill chosen in the control panel.
// It is sampled once, when a shape is started.
type StyleSource interface {
	CurrentStyle() overlay.Style
}

// StyleFunc adapts a function to StyleSource.
type StyleFunc func() overlay.Style

// CurrentStyle implements StyleSource.
func (f StyleFunc) CurrentStyle() overlay.Style { return f() }

// Machine tracks the interaction state and commits finished stamps and
// shapes into an overlay store. It is not safe for concurrent use.
type Machine struct {
	store *overlay.Store
	style StyleSource

	canvas geometry.Size // Current canvas size
	frame  geometry.Size // Fixed capture frame size

	// Shape sub-machine
	drawingEnabled bool
	shapeKind      overlay.ShapeKind
	inProgress     *overlay.Shape

	// Stamp sub-machine
	stamping     bool
	pendingStamp overlay.StampKind
}

// New creates a machine committing into store. The capture frame of size
// frame is centered in the canvas; call Resize whenever the canvas changes.
func New(store *overlay.Store, style StyleSource, frame geometry.Size) *Machine {
	return &Machine{
		store:  store,
		style:  style,
		canvas: frame,
		frame:  frame,
	}
}

// Resize updates the canvas size used for bounds checks.
func (m *Machine) Resize(canvas geometry.Size) {
	m.canvas = canvas
}

// FrameRect returns the capture frame rectangle in canvas coordinates.
func (m *Machine) FrameRect() geometry.Rect {
	return geometry.Centered(m.canvas, m.frame)
}

// WithinBounds reports whether (x, y) lies inside the capture frame.
func (m *Machine) WithinBounds(x, y float64) bool {
	return m.FrameRect().Contains(geometry.NewPoint2D(x, y))
}

// SelectShape arms shape drawing for kind. Selecting the kind that is
// already armed changes nothing. Selecting a different kind abandons any
// shape in progress. It reports whether the state changed.
func (m *Machine) SelectShape(kind overlay.ShapeKind) bool {
	if !kind.Valid() {
		return false
	}
	if m.drawingEnabled && m.shapeKind == kind {
		return false
	}
	m.drawingEnabled = true
	m.shapeKind = kind
	m.inProgress = nil
	return true
}

// SelectStamp arms stamping with image, replacing any previously armed
// image. The shape sub-machine is left alone. Unknown kinds are ignored.
func (m *Machine) SelectStamp(image overlay.StampKind) bool {
	if !image.Valid() {
		return false
	}
	m.stamping = true
	m.pendingStamp = image
	return true
}

// Press starts a new shape at (x, y) when drawing is armed, the primary
// button is used and the point lies inside the capture frame.
func (m *Machine) Press(x, y float64, button Button) bool {
	if !m.drawingEnabled || button != ButtonPrimary || !m.WithinBounds(x, y) {
		return false
	}
	var style overlay.Style
	if m.style != nil {
		style = m.style.CurrentStyle()
	}
	sh := overlay.NewShape(m.shapeKind, x, y, style)
	m.inProgress = &sh
	return true
}

// Drag stretches the shape in progress so its far corner follows (x, y).
// Extents are not clamped and may be negative.
func (m *Machine) Drag(x, y float64) bool {
	if m.inProgress == nil || !m.drawingEnabled {
		return false
	}
	m.inProgress.W = x - m.inProgress.X
	m.inProgress.H = y - m.inProgress.Y
	return true
}

// Release commits the shape in progress. The armed kind stays armed.
// It returns the committed shape, if there was one.
func (m *Machine) Release() (overlay.Shape, bool) {
	if m.inProgress == nil || !m.drawingEnabled {
		return overlay.Shape{}, false
	}
	sh := *m.inProgress
	m.inProgress = nil
	m.store.AddShape(sh)
	return sh, true
}

// Click places the armed stamp at (x, y). A click outside the capture
// frame is declined and stamping stays armed.
func (m *Machine) Click(x, y float64) (overlay.Stamp, bool) {
	if !m.stamping || !m.WithinBounds(x, y) {
		return overlay.Stamp{}, false
	}
	st := overlay.NewStamp(m.pendingStamp, x, y)
	m.store.AddStamp(st)
	m.stamping = false
	m.pendingStamp = overlay.StampNone
	return st, true
}

// DrawingEnabled reports whether a shape kind is armed.
func (m *Machine) DrawingEnabled() bool {
	return m.drawingEnabled
}

// PendingShapeKind returns the armed shape kind, or ShapeNone.
func (m *Machine) PendingShapeKind() overlay.ShapeKind {
	if !m.drawingEnabled {
		return overlay.ShapeNone
	}
	return m.shapeKind
}

// PendingStamp returns the armed stamp image, if stamping is armed.
func (m *Machine) PendingStamp() (overlay.StampKind, bool) {
	return m.pendingStamp, m.stamping
}

// InProgress returns a copy of the shape being drawn, if any.
func (m *Machine) InProgress() (overlay.Shape, bool) {
	if m.inProgress == nil || !m.drawingEnabled {
		return overlay.Shape{}, false
	}
	return *m.inProgress, true
}
