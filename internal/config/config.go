// Package config loads the photobooth configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"photobooth/internal/filter"
	"photobooth/internal/overlay"
	"photobooth/pkg/colorutil"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the configuration file looked up when no path is given.
const DefaultFile = "photobooth.toml"

// Config represents the photobooth.toml configuration file.
type Config struct {
	Capture CaptureConfig `toml:"capture"`
	Canvas  CanvasConfig  `toml:"canvas"`
	Stamps  StampsConfig  `toml:"stamps"`
	Filters FiltersConfig `toml:"filters"`
	Style   StyleConfig   `toml:"style"`
	Export  ExportConfig  `toml:"export"`
}

// CaptureConfig selects and sizes the video source.
type CaptureConfig struct {
	// Camera index passed to OpenCV
	Device int `toml:"device"`
	// Frame size in pixels; frames are resized to this if the camera differs
	Width  int `toml:"width"`
	Height int `toml:"height"`
	FPS    int `toml:"fps"`
	// Mirror flips frames horizontally, like a bathroom mirror
	Mirror bool `toml:"mirror"`
	// Still replaces the camera with an image file when set
	Still string `toml:"still"`
}

// CanvasConfig sizes the drawing surface around the frame.
type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// StampsConfig locates the stamp images.
type StampsConfig struct {
	Dir    string            `toml:"dir"`
	Width  int               `toml:"width"`
	Height int               `toml:"height"`
	Files  map[string]string `toml:"files"` // stamp name -> file name inside Dir
}

// FiltersConfig tunes filter arguments.
type FiltersConfig struct {
	Default         string `toml:"default"`
	BlurRadius      int    `toml:"blur_radius"`
	PosterizeLevels int    `toml:"posterize_levels"`
}

// StyleConfig holds the initial shape style shown in the control panel.
type StyleConfig struct {
	Border    string `toml:"border"`
	Fill      string `toml:"fill"`
	Thickness string `toml:"thickness"`
}

// ExportConfig controls frame saving.
type ExportConfig struct {
	DefaultName string `toml:"default_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	fp := filter.DefaultParams()
	return Config{
		Capture: CaptureConfig{
			Device: 0,
			Width:  640,
			Height: 480,
			FPS:    30,
		},
		Canvas: CanvasConfig{
			Width:      1024,
			Height:     640,
			Background: colorutil.Hex(colorutil.Background),
		},
		Stamps: StampsConfig{
			Dir:    "assets",
			Width:  170,
			Height: 150,
			Files: map[string]string{
				overlay.StampGlasses.String():   "glasses.png",
				overlay.StampHat.String():       "hat.png",
				overlay.StampMoustache.String(): "moustache.png",
				overlay.StampSanta.String():     "santa-claus.png",
			},
		},
		Filters: FiltersConfig{
			Default:         filter.Opaque.String(),
			BlurRadius:      fp.BlurRadius,
			PosterizeLevels: fp.PosterizeLevels,
		},
		Style: StyleConfig{
			Border:    "#000000",
			Fill:      "#ffffff",
			Thickness: "1",
		},
		Export: ExportConfig{
			DefaultName: "canvas_image.png",
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the values that cannot be silently defaulted.
func (c Config) Validate() error {
	if c.Capture.Width <= 0 || c.Capture.Height <= 0 {
		return fmt.Errorf("capture size %dx%d must be positive", c.Capture.Width, c.Capture.Height)
	}
	if c.Stamps.Width <= 0 || c.Stamps.Height <= 0 {
		return fmt.Errorf("stamp size %dx%d must be positive", c.Stamps.Width, c.Stamps.Height)
	}
	for name := range c.Stamps.Files {
		if _, err := overlay.ParseStampKind(name); err != nil {
			return err
		}
	}
	if _, err := filter.Parse(c.Filters.Default); err != nil {
		return err
	}
	if _, err := c.ShapeStyle(); err != nil {
		return err
	}
	if _, err := colorutil.ParseHex(c.Canvas.Background); err != nil {
		return err
	}
	return nil
}

// FilterParams returns the filter arguments, falling back to defaults for
// unset values.
func (c Config) FilterParams() filter.Params {
	p := filter.DefaultParams()
	if c.Filters.BlurRadius > 0 {
		p.BlurRadius = c.Filters.BlurRadius
	}
	if c.Filters.PosterizeLevels >= 2 {
		p.PosterizeLevels = c.Filters.PosterizeLevels
	}
	return p
}

// ShapeStyle parses the configured initial shape style.
func (c Config) ShapeStyle() (overlay.Style, error) {
	border, err := colorutil.ParseHex(c.Style.Border)
	if err != nil {
		return overlay.Style{}, fmt.Errorf("style border: %w", err)
	}
	fill, err := colorutil.ParseHex(c.Style.Fill)
	if err != nil {
		return overlay.Style{}, fmt.Errorf("style fill: %w", err)
	}
	thickness, err := overlay.ParseThickness(c.Style.Thickness)
	if err != nil {
		return overlay.Style{}, fmt.Errorf("style thickness: %w", err)
	}
	return overlay.Style{Border: border, Fill: fill, Thickness: thickness}, nil
}

// StampFiles maps each configured stamp to its file name.
func (c Config) StampFiles() map[overlay.StampKind]string {
	files := make(map[overlay.StampKind]string, len(c.Stamps.Files))
	for name, file := range c.Stamps.Files {
		if kind, err := overlay.ParseStampKind(name); err == nil {
			files[kind] = file
		}
	}
	return files
}
