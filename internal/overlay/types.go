// Package overlay holds the stamps and shapes placed on top of the live video.
package overlay

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"photobooth/pkg/geometry"

	"github.com/google/uuid"
)

// StampKind identifies one of the stamp images.
type StampKind int

const (
	StampNone StampKind = iota
	StampGlasses
	StampHat
	StampMoustache
	StampSanta
)

// StampKinds lists every placeable stamp in panel order.
func StampKinds() []StampKind {
	return []StampKind{StampGlasses, StampHat, StampMoustache, StampSanta}
}

func (k StampKind) String() string {
	switch k {
	case StampGlasses:
		return "glasses"
	case StampHat:
		return "hat"
	case StampMoustache:
		return "moustache"
	case StampSanta:
		return "santa"
	default:
		return "none"
	}
}

// Label returns the button caption for the stamp.
func (k StampKind) Label() string {
	switch k {
	case StampGlasses:
		return "Glasses"
	case StampHat:
		return "Hat"
	case StampMoustache:
		return "Moustache"
	case StampSanta:
		return "Santa Beard"
	default:
		return "None"
	}
}

// Valid reports whether k names a placeable stamp.
func (k StampKind) Valid() bool {
	return k >= StampGlasses && k <= StampSanta
}

// ParseStampKind converts a stamp tag such as "hat" into a StampKind.
func ParseStampKind(s string) (StampKind, error) {
	for _, k := range StampKinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return StampNone, fmt.Errorf("unknown stamp %q", s)
}

// ShapeKind selects the primitive a Shape draws as.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeRectangle
	ShapeEllipse
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeEllipse:
		return "ellipse"
	default:
		return "none"
	}
}

// Valid reports whether k is a drawable shape kind.
func (k ShapeKind) Valid() bool {
	return k == ShapeRectangle || k == ShapeEllipse
}

// ParseShapeKind converts "rectangle" or "ellipse" into a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(s) {
	case "rectangle", "rect":
		return ShapeRectangle, nil
	case "ellipse":
		return ShapeEllipse, nil
	}
	return ShapeNone, fmt.Errorf("unknown shape %q", s)
}

// Thickness is a border width in pixels. ThicknessNone draws no border.
type Thickness int

const ThicknessNone Thickness = 0

// MaxThickness is the largest border offered in the thickness selector.
const MaxThickness Thickness = 10

func (t Thickness) String() string {
	if t <= ThicknessNone {
		return "None"
	}
	return strconv.Itoa(int(t))
}

// ParseThickness accepts "None" or a positive integer.
func ParseThickness(s string) (Thickness, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") || s == "" {
		return ThicknessNone, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ThicknessNone, fmt.Errorf("invalid thickness %q: %w", s, err)
	}
	if n <= 0 {
		return ThicknessNone, fmt.Errorf("invalid thickness %q: must be None or positive", s)
	}
	return Thickness(n), nil
}

// ThicknessOptions returns the selector entries: "None", "1" ... "10".
func ThicknessOptions() []string {
	opts := []string{ThicknessNone.String()}
	for t := Thickness(1); t <= MaxThickness; t++ {
		opts = append(opts, t.String())
	}
	return opts
}

// Style is the border and fill applied to a shape when it is created.
type Style struct {
	Border    color.NRGBA
	Fill      color.NRGBA
	Thickness Thickness
}

// DefaultStyle is a 1px black border on a white fill.
func DefaultStyle() Style {
	return Style{
		Border:    color.NRGBA{A: 255},
		Fill:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Thickness: 1,
	}
}

// Stamp is an image placed on the canvas. Stamps are never modified after
// creation.
type Stamp struct {
	ID    string
	Image StampKind
	X, Y  float64
}

// NewStamp creates a stamp with a fresh ID.
func NewStamp(kind StampKind, x, y float64) Stamp {
	return Stamp{ID: uuid.NewString(), Image: kind, X: x, Y: y}
}

// Shape is a rectangle or ellipse spanning from its origin (X, Y) by the
// signed extents (W, H). Negative extents extend left or up.
type Shape struct {
	ID    string
	X, Y  float64
	W, H  float64
	Kind  ShapeKind
	Style Style
}

// NewShape starts a zero-sized shape at the given origin.
func NewShape(kind ShapeKind, x, y float64, style Style) Shape {
	return Shape{ID: uuid.NewString(), X: x, Y: y, Kind: kind, Style: style}
}

// Bounds returns the shape's box with non-negative extents.
func (s Shape) Bounds() geometry.Rect {
	return geometry.NewRect(s.X, s.Y, s.W, s.H).Normalize()
}
