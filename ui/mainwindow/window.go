// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"photobooth/internal/app"
	"photobooth/internal/export"
	"photobooth/internal/filter"
	"photobooth/internal/overlay"
	"photobooth/internal/version"
	"photobooth/ui/canvas"
	"photobooth/ui/panels"
	"photobooth/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const windowTitle = "Photobooth"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.BoothCanvas
	controls  *panels.ControlPanel
	statusBar *widget.Label

	defaultSaveName string
}

// New creates a new main window. frameSize is the capture frame size, used
// as the canvas's minimum size.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, frameSize fyne.Size, defaultSaveName string) *MainWindow {
	win := fyneApp.NewWindow(windowTitle)

	if defaultSaveName == "" {
		defaultSaveName = export.DefaultName
	}
	mw := &MainWindow{
		Window:          win,
		app:             fyneApp,
		state:           state,
		prefs:           p,
		defaultSaveName: defaultSaveName,
	}

	mw.setupUI(frameSize)
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.controls.RestorePrefs()

	w := float32(p.FloatWithFallback(prefs.KeyWindowW, float64(frameSize.Width)+280))
	h := float32(p.FloatWithFallback(prefs.KeyWindowH, float64(frameSize.Height)+80))
	mw.Resize(fyne.NewSize(w, h))
	mw.SetOnClosed(mw.savePreferences)

	return mw
}

// Canvas returns the booth canvas, for refreshing when frames arrive.
func (mw *MainWindow) Canvas() *canvas.BoothCanvas {
	return mw.canvas
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI(frameSize fyne.Size) {
	mw.canvas = canvas.NewBoothCanvas(mw.state, frameSize)

	mw.controls = panels.NewControlPanel(mw.state, mw.prefs, mw.onSaveFrame)
	mw.controls.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	side := container.NewVScroll(container.NewPadded(mw.controls.Container()))

	// Main layout: canvas | control panel, status bar at bottom
	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		side,                              // right
		mw.canvas,                         // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Frame...", mw.onSaveFrame),
		fyne.NewMenuItem("Quick Save", mw.onQuickSave),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Canvas", func() { mw.state.Reset() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	filterItems := []*fyne.MenuItem{}
	for _, k := range filter.Kinds() {
		filterItems = append(filterItems, fyne.NewMenuItem(k.Label(), func() { mw.state.SelectFilter(k) }))
	}
	filterMenu := fyne.NewMenu("Filter", filterItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, filterMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventFilterChanged, func(data interface{}) {
		if k, ok := data.(filter.Kind); ok {
			mw.updateStatus("Filter: " + k.Label())
		}
	})
	mw.state.On(app.EventNoFilterChanged, func(data interface{}) {
		if on, _ := data.(bool); on {
			mw.updateStatus("No Filter: showing the camera as captured")
		}
		mw.canvas.Refresh()
	})
	mw.state.On(app.EventShapeArmed, func(data interface{}) {
		if k, ok := data.(overlay.ShapeKind); ok {
			mw.updateStatus(fmt.Sprintf("Drawing %ss: drag inside the frame", k))
		}
	})
	mw.state.On(app.EventStampArmed, func(data interface{}) {
		if k, ok := data.(overlay.StampKind); ok {
			mw.updateStatus(fmt.Sprintf("Click inside the frame to place the %s", strings.ToLower(k.Label())))
		}
	})
	mw.state.On(app.EventStampPlaced, func(data interface{}) {
		mw.updateStatus(mw.countsText())
	})
	mw.state.On(app.EventShapeCommitted, func(data interface{}) {
		mw.updateStatus(mw.countsText())
	})
	mw.state.On(app.EventReset, func(interface{}) {
		mw.updateStatus("Canvas cleared")
		mw.canvas.Refresh()
	})
	mw.state.On(app.EventFrameSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
	})
}

func (mw *MainWindow) countsText() string {
	m := mw.state.Mode()
	return fmt.Sprintf("%d stamps, %d shapes", m.StampCount, m.ShapeCount)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeySaveDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeySaveDir, filepath.Dir(filePath))
}

func (mw *MainWindow) savePreferences() {
	if size := mw.Content().Size(); size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefs.KeyWindowW, float64(size.Width))
		mw.prefs.SetFloat(prefs.KeyWindowH, float64(size.Height))
	}
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onSaveFrame() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if _, ferr := export.FormatFor(path); ferr != nil {
			path += ".png"
		}
		mw.saveLastDir(path)
		mw.saveFrame(path)
	}, mw.Window)
	fd.SetFileName(mw.defaultSaveName)
	fd.SetFilter(storage.NewExtensionFileFilter(export.Extensions()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onQuickSave writes the default file name into the last used directory
// without asking.
func (mw *MainWindow) onQuickSave() {
	dir := mw.prefs.String(prefs.KeySaveDir)
	mw.saveFrame(filepath.Join(dir, mw.defaultSaveName))
}

func (mw *MainWindow) saveFrame(path string) {
	if err := mw.state.SaveFrame(path); err != nil {
		log.Printf("Save failed: %v", err)
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Photobooth",
		fmt.Sprintf("Photobooth v%s\n\n"+
			"Live webcam filters, stamps and shapes.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
