// Command boothshot grabs one frame, decorates it with stamps and shapes
// given on the command line and saves it, without opening a window.
//
// Positions are relative to the top-left corner of the captured frame.
//
//	boothshot -filter posterize -stamp hat@230,10 -shape ellipse@20,300,120,80 -out shot.png
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"photobooth/internal/app"
	"photobooth/internal/config"
	"photobooth/internal/filter"
	"photobooth/internal/interaction"
	"photobooth/internal/overlay"
	"photobooth/internal/stamps"
	"photobooth/internal/version"
	"photobooth/internal/vision"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, " ") }
func (l *listFlag) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	configPath := flag.String("config", config.DefaultFile, "Configuration file")
	stillPath := flag.String("still", "", "Use an image file instead of the camera")
	device := flag.Int("device", -1, "Camera index (overrides the config)")
	filterName := flag.String("filter", "", "Filter: opaque, invert, blur, posterize or gray")
	border := flag.String("border", "", "Shape border colour, e.g. #ff0000")
	fill := flag.String("fill", "", "Shape fill colour")
	thickness := flag.String("thickness", "", "Shape border thickness: None or 1-10")
	out := flag.String("out", "", "Output file (.png, .jpg or .pdf)")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	var stampArgs, shapeArgs listFlag
	flag.Var(&stampArgs, "stamp", "Stamp as name@x,y (repeatable)")
	flag.Var(&shapeArgs, "shape", "Shape as rect|ellipse@x,y,w,h (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("boothshot %s\n", version.String())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *stillPath != "" {
		cfg.Capture.Still = *stillPath
	}
	if *device >= 0 {
		cfg.Capture.Device = *device
	}
	if *filterName != "" {
		cfg.Filters.Default = *filterName
	}
	if *border != "" {
		cfg.Style.Border = *border
	}
	if *fill != "" {
		cfg.Style.Fill = *fill
	}
	if *thickness != "" {
		cfg.Style.Thickness = *thickness
	}
	if *out == "" {
		*out = cfg.Export.DefaultName
	}

	kind, err := filter.Parse(cfg.Filters.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	style, err := cfg.ShapeStyle()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	frameSize := image.Pt(cfg.Capture.Width, cfg.Capture.Height)
	still, err := grab(cfg, frameSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to capture frame: %v\n", err)
		os.Exit(1)
	}
	defer still.Close()
	fmt.Printf("Captured %dx%d frame\n", frameSize.X, frameSize.Y)

	library := stamps.LoadDir(cfg.Stamps.Dir, cfg.StampFiles(), image.Pt(cfg.Stamps.Width, cfg.Stamps.Height))
	state := app.NewState(still, app.Options{
		FrameSize: frameSize,
		Style:     style,
		Filter:    kind,
		Stamps:    library,
	})
	state.Resize(frameSize.X, frameSize.Y)
	origin := state.FrameRect()

	for _, arg := range stampArgs {
		stamp, x, y, err := parseStamp(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "-stamp %s: %v\n", arg, err)
			os.Exit(1)
		}
		before := state.Mode().StampCount
		state.OnModeSelectStamp(stamp)
		state.OnPointerClick(origin.X+x, origin.Y+y)
		if state.Mode().StampCount == before {
			fmt.Printf("Skipped %s at (%.0f, %.0f): outside the frame\n", stamp, x, y)
		}
	}

	for _, arg := range shapeArgs {
		shape, r, err := parseShape(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "-shape %s: %v\n", arg, err)
			os.Exit(1)
		}
		state.OnModeSelectShape(shape)
		if !state.OnPointerPress(origin.X+r.X, origin.Y+r.Y, interaction.ButtonPrimary) {
			fmt.Printf("Skipped %s at (%.0f, %.0f): outside the frame\n", shape, r.X, r.Y)
			continue
		}
		state.OnPointerDrag(origin.X+r.X+r.Width, origin.Y+r.Y+r.Height)
		state.OnPointerRelease()
	}

	mode := state.Mode()
	fmt.Printf("Filter: %s\n", kind.Label())
	fmt.Printf("Placed %d stamps and %d shapes\n", mode.StampCount, mode.ShapeCount)

	state.RenderFrame(frameSize.X, frameSize.Y)
	if err := state.SaveFrame(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s\n", *out)
}

// grab captures one frame from the configured source and freezes it.
func grab(cfg config.Config, size image.Point) (*vision.Still, error) {
	opts := vision.Options{
		Device: cfg.Capture.Device,
		Size:   size,
		FPS:    cfg.Capture.FPS,
		Mirror: cfg.Capture.Mirror,
		Params: cfg.FilterParams(),
	}
	if cfg.Capture.Still != "" {
		return vision.OpenStill(cfg.Capture.Still, opts)
	}

	cam, err := vision.OpenCamera(opts)
	if err != nil {
		return nil, err
	}
	defer cam.Close()
	img, err := cam.Grab(5)
	if err != nil {
		return nil, err
	}
	// The grabbed frame is already mirrored and sized.
	opts.Mirror = false
	return vision.NewStill(img, opts), nil
}

// parseStamp parses name@x,y.
func parseStamp(s string) (overlay.StampKind, float64, float64, error) {
	name, pos, ok := strings.Cut(s, "@")
	if !ok {
		return overlay.StampNone, 0, 0, fmt.Errorf("expected name@x,y")
	}
	kind, err := overlay.ParseStampKind(name)
	if err != nil {
		return overlay.StampNone, 0, 0, err
	}
	v, err := parseFloats(pos, 2)
	if err != nil {
		return overlay.StampNone, 0, 0, err
	}
	return kind, v[0], v[1], nil
}

// shapeRect is a shape's origin and signed extents.
type shapeRect struct {
	X, Y, Width, Height float64
}

// parseShape parses kind@x,y,w,h.
func parseShape(s string) (overlay.ShapeKind, shapeRect, error) {
	name, pos, ok := strings.Cut(s, "@")
	if !ok {
		return overlay.ShapeNone, shapeRect{}, fmt.Errorf("expected kind@x,y,w,h")
	}
	kind, err := overlay.ParseShapeKind(name)
	if err != nil {
		return overlay.ShapeNone, shapeRect{}, err
	}
	v, err := parseFloats(pos, 4)
	if err != nil {
		return overlay.ShapeNone, shapeRect{}, err
	}
	return kind, shapeRect{v[0], v[1], v[2], v[3]}, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, s)
	}
	v := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		v[i] = f
	}
	return v, nil
}
