// Package app ties the overlay store, the interaction machine and the filter
// selection into one session, and notifies the UI of changes through events.
package app

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"photobooth/internal/export"
	"photobooth/internal/filter"
	"photobooth/internal/interaction"
	"photobooth/internal/overlay"
	"photobooth/internal/render"
	"photobooth/pkg/colorutil"
	"photobooth/pkg/geometry"
)

// FrameSource supplies the latest video frame with a filter applied.
// It reports false while no frame is available.
type FrameSource interface {
	Frame(kind filter.Kind) (image.Image, bool)
}

// EventType identifies different application events. The data passed to
// listeners is the new value: a filter.Kind, a bool for the override, the
// armed kind, the placed Stamp or committed Shape, the new Style, nil for
// reset and the file path for a saved frame.
type EventType int

const (
	EventFilterChanged EventType = iota
	EventNoFilterChanged
	EventShapeArmed
	EventStampArmed
	EventStampPlaced
	EventShapeCommitted
	EventStyleChanged
	EventReset
	EventFrameSaved
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Options configures a new State.
type Options struct {
	FrameSize  image.Point // Capture frame size, 640x480 if zero
	Style      overlay.Style
	Filter     filter.Kind
	Stamps     render.StampImages
	Background color.NRGBA // Grey 150 if zero
}

// State is one photobooth session. All methods are safe for concurrent use;
// listeners are called outside the lock.
type State struct {
	mu sync.RWMutex

	store    *overlay.Store
	machine  *interaction.Machine
	selector filter.Selector
	style    overlay.Style
	noFilter bool

	frames    FrameSource
	renderer  *render.Renderer
	frameSize image.Point
	canvas    image.Point
	pointer   *geometry.Point2D // Last hover position, nil when outside

	lastRender    *image.RGBA
	lastFrameRect image.Rectangle

	// Event listeners
	listeners map[EventType][]EventListener
}

// NewState creates a session reading frames from frames.
func NewState(frames FrameSource, opts Options) *State {
	if opts.FrameSize == (image.Point{}) {
		opts.FrameSize = image.Pt(640, 480)
	}
	if opts.Background == (color.NRGBA{}) {
		opts.Background = colorutil.Background
	}

	s := &State{
		store:     overlay.NewStore(),
		style:     opts.Style,
		frames:    frames,
		renderer:  render.New(opts.Stamps),
		frameSize: opts.FrameSize,
		canvas:    opts.FrameSize,
		listeners: make(map[EventType][]EventListener),
	}
	s.renderer.SetBackground(opts.Background)
	s.selector.Select(opts.Filter)
	// Called from Press, which already runs under s.mu.
	styleLocked := interaction.StyleFunc(func() overlay.Style { return s.style })
	s.machine = interaction.New(s.store, styleLocked, sizeOf(opts.FrameSize))
	return s
}

func sizeOf(p image.Point) geometry.Size {
	return geometry.NewSize(float64(p.X), float64(p.Y))
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// OnModeSelectShape arms shape drawing for kind.
func (s *State) OnModeSelectShape(kind overlay.ShapeKind) {
	s.mu.Lock()
	changed := s.machine.SelectShape(kind)
	s.mu.Unlock()
	if changed {
		s.Emit(EventShapeArmed, kind)
	}
}

// OnModeSelectStamp arms stamping with kind.
func (s *State) OnModeSelectStamp(kind overlay.StampKind) {
	s.mu.Lock()
	armed := s.machine.SelectStamp(kind)
	s.mu.Unlock()
	if armed {
		s.Emit(EventStampArmed, kind)
	}
}

// OnPointerPress starts a shape at (x, y) when drawing is armed.
func (s *State) OnPointerPress(x, y float64, button interaction.Button) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Press(x, y, button)
}

// OnPointerDrag stretches the shape in progress.
func (s *State) OnPointerDrag(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = &geometry.Point2D{X: x, Y: y}
	return s.machine.Drag(x, y)
}

// OnPointerRelease commits the shape in progress.
func (s *State) OnPointerRelease() {
	s.mu.Lock()
	sh, ok := s.machine.Release()
	s.mu.Unlock()
	if ok {
		s.Emit(EventShapeCommitted, sh)
	}
}

// OnPointerClick places the armed stamp at (x, y).
func (s *State) OnPointerClick(x, y float64) {
	s.mu.Lock()
	st, ok := s.machine.Click(x, y)
	s.mu.Unlock()
	if ok {
		s.Emit(EventStampPlaced, st)
	}
}

// OnPointerMove records the hover position used for the stamp preview.
func (s *State) OnPointerMove(x, y float64) {
	s.mu.Lock()
	s.pointer = &geometry.Point2D{X: x, Y: y}
	s.mu.Unlock()
}

// OnPointerLeave hides the stamp preview.
func (s *State) OnPointerLeave() {
	s.mu.Lock()
	s.pointer = nil
	s.mu.Unlock()
}

// Resize sets the canvas size used for bounds checks and rendering.
func (s *State) Resize(w, h int) {
	s.mu.Lock()
	s.resizeLocked(w, h)
	s.mu.Unlock()
}

func (s *State) resizeLocked(w, h int) {
	s.canvas = image.Pt(w, h)
	s.machine.Resize(sizeOf(s.canvas))
}

// FrameRect returns the capture region in canvas coordinates.
func (s *State) FrameRect() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.machine.FrameRect()
}

// RenderFrame draws the canvas at w x h. The "No Filter" override is read
// once, before the frame is fetched, and applies to this whole frame.
func (s *State) RenderFrame(w, h int) *image.RGBA {
	s.mu.Lock()
	if s.canvas != image.Pt(w, h) {
		s.resizeLocked(w, h)
	}

	noFilter := s.noFilter
	before := s.selector.Active()
	kind := s.selector.ForFrame(noFilter)

	var frame image.Image
	if s.frames != nil {
		if img, ok := s.frames.Frame(kind); ok {
			frame = img
		}
	}

	scene := render.Scene{
		Canvas:    s.canvas,
		FrameSize: s.frameSize,
		Frame:     frame,
		Stamps:    s.store.Stamps(),
		Shapes:    s.store.Shapes(),
	}
	if stamp, armed := s.machine.PendingStamp(); armed && s.pointer != nil {
		scene.Preview = &render.Preview{Kind: stamp, X: s.pointer.X, Y: s.pointer.Y}
	}
	if sh, ok := s.machine.InProgress(); ok {
		scene.InProgress = &sh
	}

	img := s.renderer.Render(scene)
	s.lastRender = img
	s.lastFrameRect = scene.FrameRect()
	s.mu.Unlock()

	if kind != before {
		s.Emit(EventFilterChanged, kind)
	}
	return img
}

// Reset removes every stamp and shape and reverts to the neutral filter.
// Armed modes and a shape in progress are left alone.
func (s *State) Reset() {
	s.mu.Lock()
	s.store.Reset()
	s.selector.Reset()
	s.mu.Unlock()
	s.Emit(EventReset, nil)
	s.Emit(EventFilterChanged, filter.Opaque)
}

// SelectFilter makes kind the active filter.
func (s *State) SelectFilter(kind filter.Kind) {
	s.mu.Lock()
	s.selector.Select(kind)
	s.mu.Unlock()
	s.Emit(EventFilterChanged, kind)
}

// SetNoFilter sets the "No Filter" override.
func (s *State) SetNoFilter(on bool) {
	s.mu.Lock()
	changed := s.noFilter != on
	s.noFilter = on
	s.mu.Unlock()
	if changed {
		s.Emit(EventNoFilterChanged, on)
	}
}

// SetBorderColor sets the border colour for shapes started from now on.
func (s *State) SetBorderColor(c color.Color) {
	s.updateStyle(func(st *overlay.Style) { st.Border = colorutil.ToNRGBA(c) })
}

// SetFillColor sets the fill colour for shapes started from now on.
func (s *State) SetFillColor(c color.Color) {
	s.updateStyle(func(st *overlay.Style) { st.Fill = colorutil.ToNRGBA(c) })
}

// SetThickness sets the border thickness for shapes started from now on.
func (s *State) SetThickness(t overlay.Thickness) {
	if t < overlay.ThicknessNone {
		t = overlay.ThicknessNone
	}
	s.updateStyle(func(st *overlay.Style) { st.Thickness = t })
}

func (s *State) updateStyle(fn func(*overlay.Style)) {
	s.mu.Lock()
	fn(&s.style)
	style := s.style
	s.mu.Unlock()
	s.Emit(EventStyleChanged, style)
}

// CurrentStyle returns the style new shapes will use.
func (s *State) CurrentStyle() overlay.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// ActiveFilter returns the selected filter.
func (s *State) ActiveFilter() filter.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selector.Active()
}

// NoFilter reports whether the "No Filter" override is set.
func (s *State) NoFilter() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.noFilter
}

// Mode describes what the pointer will do next, for the status bar.
type Mode struct {
	Shape      overlay.ShapeKind // ShapeNone when drawing is off
	Stamp      overlay.StampKind // StampNone when not stamping
	Drawing    bool              // A shape is in progress
	StampCount int
	ShapeCount int
}

// Mode returns a snapshot of the interaction state.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := Mode{
		Shape:      s.machine.PendingShapeKind(),
		StampCount: s.store.StampCount(),
		ShapeCount: s.store.ShapeCount(),
	}
	if stamp, ok := s.machine.PendingStamp(); ok {
		m.Stamp = stamp
	}
	_, m.Drawing = s.machine.InProgress()
	return m
}

// Snapshot returns copies of the placed stamps and committed shapes.
func (s *State) Snapshot() ([]overlay.Stamp, []overlay.Shape) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stamps []overlay.Stamp
	for st := range s.store.Stamps() {
		stamps = append(stamps, st)
	}
	var shapes []overlay.Shape
	for sh := range s.store.Shapes() {
		shapes = append(shapes, sh)
	}
	return stamps, shapes
}

// SaveFrame writes the capture region of the last rendered canvas to path.
// The format follows the extension: .png, .jpg/.jpeg or .pdf. If nothing
// has been rendered yet a frame is rendered at the current canvas size.
func (s *State) SaveFrame(path string) error {
	if path == "" {
		path = export.DefaultName
	}

	s.mu.RLock()
	img, rect, canvas := s.lastRender, s.lastFrameRect, s.canvas
	s.mu.RUnlock()
	if img == nil {
		img = s.RenderFrame(canvas.X, canvas.Y)
		s.mu.RLock()
		rect = s.lastFrameRect
		s.mu.RUnlock()
	}

	if err := export.Save(path, export.Crop(img, rect)); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	s.Emit(EventFrameSaved, path)
	return nil
}
