// Package panels provides UI panels for the application.
package panels

import (
	"image/color"
	"log"

	"photobooth/internal/app"
	"photobooth/internal/filter"
	"photobooth/internal/overlay"
	"photobooth/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ControlPanel holds the filter, stamp, shape and style controls.
type ControlPanel struct {
	state     *app.State
	prefs     *prefs.Prefs
	window    fyne.Window
	container fyne.CanvasObject

	filterButtons map[filter.Kind]*widget.Button
	noFilterCheck *widget.Check
	shapeButtons  map[overlay.ShapeKind]*widget.Button
	stampButtons  map[overlay.StampKind]*widget.Button

	borderSwatch    *fynecanvas.Rectangle
	fillSwatch      *fynecanvas.Rectangle
	thicknessSelect *widget.Select

	onSave func()
}

// NewControlPanel creates the control panel. onSave is called by the Save
// button.
func NewControlPanel(state *app.State, p *prefs.Prefs, onSave func()) *ControlPanel {
	cp := &ControlPanel{
		state:         state,
		prefs:         p,
		onSave:        onSave,
		filterButtons: make(map[filter.Kind]*widget.Button),
		shapeButtons:  make(map[overlay.ShapeKind]*widget.Button),
		stampButtons:  make(map[overlay.StampKind]*widget.Button),
	}

	// Filters
	filterRow := container.NewGridWithColumns(2)
	for _, k := range filter.Kinds() {
		btn := widget.NewButton(k.Label(), func() { cp.state.SelectFilter(k) })
		cp.filterButtons[k] = btn
		filterRow.Add(btn)
	}
	cp.noFilterCheck = widget.NewCheck("No Filter", func(checked bool) {
		cp.state.SetNoFilter(checked)
		cp.prefs.SetBool(prefs.KeyNoFilter, checked)
	})

	// Stamps
	stampRow := container.NewGridWithColumns(2)
	for _, k := range overlay.StampKinds() {
		btn := widget.NewButton(k.Label(), func() { cp.state.OnModeSelectStamp(k) })
		cp.stampButtons[k] = btn
		stampRow.Add(btn)
	}

	// Shapes
	rectBtn := widget.NewButton("Rectangle", func() { cp.state.OnModeSelectShape(overlay.ShapeRectangle) })
	ellipseBtn := widget.NewButton("Ellipse", func() { cp.state.OnModeSelectShape(overlay.ShapeEllipse) })
	cp.shapeButtons[overlay.ShapeRectangle] = rectBtn
	cp.shapeButtons[overlay.ShapeEllipse] = ellipseBtn

	// Style
	style := state.CurrentStyle()
	cp.borderSwatch = newSwatch(style.Border)
	cp.fillSwatch = newSwatch(style.Fill)
	borderBtn := widget.NewButton("Border Colour", func() {
		cp.pickColor("Border Colour", cp.state.CurrentStyle().Border, func(c color.Color) {
			cp.state.SetBorderColor(c)
			cp.prefs.SetColor(prefs.KeyBorderColor, c)
		})
	})
	fillBtn := widget.NewButton("Fill Colour", func() {
		cp.pickColor("Fill Colour", cp.state.CurrentStyle().Fill, func(c color.Color) {
			cp.state.SetFillColor(c)
			cp.prefs.SetColor(prefs.KeyFillColor, c)
		})
	})
	// Selected is set before OnChanged so building the panel does not
	// overwrite the saved thickness.
	cp.thicknessSelect = widget.NewSelect(overlay.ThicknessOptions(), nil)
	cp.thicknessSelect.Selected = style.Thickness.String()
	cp.thicknessSelect.OnChanged = cp.onThicknessChanged

	// Actions
	resetBtn := widget.NewButton("Reset", func() { cp.state.Reset() })
	saveBtn := widget.NewButton("Save", func() {
		if cp.onSave != nil {
			cp.onSave()
		}
	})
	saveBtn.Importance = widget.HighImportance

	cp.container = container.NewVBox(
		widget.NewLabelWithStyle("Filters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		filterRow,
		cp.noFilterCheck,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Stamps", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		stampRow,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Shapes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2, rectBtn, ellipseBtn),
		container.NewBorder(nil, nil, nil, cp.borderSwatch, borderBtn),
		container.NewBorder(nil, nil, nil, cp.fillSwatch, fillBtn),
		container.NewBorder(nil, nil, widget.NewLabel("Border"), nil, cp.thicknessSelect),
		widget.NewSeparator(),
		container.NewGridWithColumns(2, resetBtn, saveBtn),
	)

	cp.setupEventHandlers()
	cp.highlightFilter(state.ActiveFilter())
	return cp
}

func newSwatch(c color.Color) *fynecanvas.Rectangle {
	r := fynecanvas.NewRectangle(c)
	r.StrokeColor = color.Gray{Y: 0x60}
	r.StrokeWidth = 1
	r.SetMinSize(fyne.NewSize(28, 28))
	return r
}

// Container returns the panel container.
func (cp *ControlPanel) Container() fyne.CanvasObject {
	return cp.container
}

// SetWindow sets the parent window for dialogs.
func (cp *ControlPanel) SetWindow(w fyne.Window) {
	cp.window = w
}

// RestorePrefs applies the saved style and override to the session.
func (cp *ControlPanel) RestorePrefs() {
	style := cp.state.CurrentStyle()
	cp.state.SetBorderColor(cp.prefs.Color(prefs.KeyBorderColor, style.Border))
	cp.state.SetFillColor(cp.prefs.Color(prefs.KeyFillColor, style.Fill))
	if s := cp.prefs.String(prefs.KeyThickness); s != "" {
		cp.thicknessSelect.SetSelected(s)
	}
	cp.noFilterCheck.SetChecked(cp.prefs.Bool(prefs.KeyNoFilter, false))
}

func (cp *ControlPanel) onThicknessChanged(selected string) {
	t, err := overlay.ParseThickness(selected)
	if err != nil {
		log.Printf("Ignoring thickness %q: %v", selected, err)
		return
	}
	cp.state.SetThickness(t)
	cp.prefs.SetString(prefs.KeyThickness, selected)
}

func (cp *ControlPanel) pickColor(title string, current color.Color, apply func(color.Color)) {
	if cp.window == nil {
		return
	}
	picker := dialog.NewColorPicker(title, "", apply, cp.window)
	picker.Advanced = true
	picker.SetColor(current)
	picker.Show()
}

// setupEventHandlers keeps the controls in step with the session.
func (cp *ControlPanel) setupEventHandlers() {
	cp.state.On(app.EventFilterChanged, func(data interface{}) {
		if k, ok := data.(filter.Kind); ok {
			cp.highlightFilter(k)
		}
	})
	cp.state.On(app.EventShapeArmed, func(data interface{}) {
		if k, ok := data.(overlay.ShapeKind); ok {
			for kind, btn := range cp.shapeButtons {
				setHighlighted(btn, kind == k)
			}
		}
	})
	cp.state.On(app.EventStampArmed, func(data interface{}) {
		if k, ok := data.(overlay.StampKind); ok {
			for kind, btn := range cp.stampButtons {
				setHighlighted(btn, kind == k)
			}
		}
	})
	cp.state.On(app.EventStampPlaced, func(interface{}) {
		for _, btn := range cp.stampButtons {
			setHighlighted(btn, false)
		}
	})
	cp.state.On(app.EventStyleChanged, func(data interface{}) {
		if st, ok := data.(overlay.Style); ok {
			cp.borderSwatch.FillColor = st.Border
			cp.borderSwatch.Refresh()
			cp.fillSwatch.FillColor = st.Fill
			cp.fillSwatch.Refresh()
		}
	})
}

func (cp *ControlPanel) highlightFilter(active filter.Kind) {
	for kind, btn := range cp.filterButtons {
		setHighlighted(btn, kind == active)
	}
}

func setHighlighted(btn *widget.Button, on bool) {
	want := widget.MediumImportance
	if on {
		want = widget.HighImportance
	}
	if btn.Importance != want {
		btn.Importance = want
		btn.Refresh()
	}
}
