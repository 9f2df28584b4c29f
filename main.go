// Package main provides the entry point for the Photobooth application.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"path/filepath"
	"time"

	"photobooth/internal/app"
	"photobooth/internal/config"
	"photobooth/internal/filter"
	"photobooth/internal/overlay"
	"photobooth/internal/stamps"
	"photobooth/internal/version"
	"photobooth/internal/vision"
	"photobooth/pkg/colorutil"
	"photobooth/ui/mainwindow"
	"photobooth/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const (
	appTitle = "Photobooth"
	appID    = "io.github.photobooth"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "Configuration file")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Config %s: %v, using defaults", *configPath, err)
		cfg = config.Default()
	}

	frameSize := image.Pt(cfg.Capture.Width, cfg.Capture.Height)
	stampSize := image.Pt(cfg.Stamps.Width, cfg.Stamps.Height)
	stampFiles := cfg.StampFiles()
	library := stamps.LoadDir(cfg.Stamps.Dir, stampFiles, stampSize)

	frames, closeFrames := openFrames(cfg, frameSize)
	defer closeFrames()

	style, err := cfg.ShapeStyle()
	if err != nil {
		log.Printf("Config style: %v, using black on white", err)
		style = overlay.DefaultStyle()
	}
	initial, err := filter.Parse(cfg.Filters.Default)
	if err != nil {
		log.Printf("Config filter: %v", err)
	}
	background, err := colorutil.ParseHex(cfg.Canvas.Background)
	if err != nil {
		background = colorutil.Background
	}

	appState := app.NewState(frames, app.Options{
		FrameSize:  frameSize,
		Style:      style,
		Filter:     initial,
		Stamps:     library,
		Background: background,
	})

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.PhotoboothTheme{})
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs,
		fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)),
		cfg.Export.DefaultName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cam, ok := frames.(*vision.Camera); ok {
		go func() {
			if err := cam.Run(ctx, win.Canvas().Refresh); err != nil && ctx.Err() == nil {
				log.Printf("Camera stopped: %v", err)
			}
		}()
	}

	watchStamps(ctx, cfg.Stamps.Dir, stampFiles, library, win)

	win.ShowAndRun()
}

// openFrames opens the configured frame source. Without a camera the booth
// still runs, showing the waiting caption in place of the video.
func openFrames(cfg config.Config, size image.Point) (app.FrameSource, func()) {
	opts := vision.Options{
		Device: cfg.Capture.Device,
		Size:   size,
		FPS:    cfg.Capture.FPS,
		Mirror: cfg.Capture.Mirror,
		Params: cfg.FilterParams(),
	}

	if cfg.Capture.Still != "" {
		still, err := vision.OpenStill(cfg.Capture.Still, opts)
		if err != nil {
			log.Printf("Still image: %v", err)
			return nil, func() {}
		}
		log.Printf("Using still image %s", cfg.Capture.Still)
		return still, func() { still.Close() }
	}

	cam, err := vision.OpenCamera(opts)
	if err != nil {
		log.Printf("Camera: %v", err)
		return nil, func() {}
	}
	return cam, func() { cam.Close() }
}

// watchStamps reloads stamp images edited while the booth runs.
func watchStamps(ctx context.Context, dir string, files map[overlay.StampKind]string, library *stamps.Library, win *mainwindow.MainWindow) {
	kinds := make(map[string]overlay.StampKind, len(files))
	paths := make([]string, 0, len(files))
	for kind, name := range files {
		p := filepath.Join(dir, name)
		kinds[p] = kind
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		return
	}

	watcher := app.NewAssetWatcher(paths, 2*time.Second)
	watcher.OnChange(func(path string) {
		if err := library.Reload(kinds[path], path); err != nil {
			log.Printf("Stamp reload: %v", err)
			return
		}
		log.Printf("Stamp reload: %s", path)
		win.Canvas().Refresh()
	})
	go watcher.Run(ctx)
}
