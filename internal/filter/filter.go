// Package filter tracks which video filter is active.
package filter

import (
	"fmt"
	"strings"
)

// Kind is a video filter. Only one filter is active at a time.
type Kind int

const (
	Opaque Kind = iota // Neutral filter: the frame is shown as captured
	Invert
	Blur
	Posterize
	Gray
)

// Kinds lists the selectable filters in panel order.
func Kinds() []Kind {
	return []Kind{Invert, Blur, Posterize, Gray}
}

func (k Kind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Invert:
		return "invert"
	case Blur:
		return "blur"
	case Posterize:
		return "posterize"
	case Gray:
		return "gray"
	default:
		return fmt.Sprintf("filter(%d)", int(k))
	}
}

// Label returns the button caption for the filter.
func (k Kind) Label() string {
	switch k {
	case Invert:
		return "Invert"
	case Blur:
		return "Blur"
	case Posterize:
		return "Posterize"
	case Gray:
		return "Gray"
	default:
		return "None"
	}
}

// Parse converts a filter name such as "blur" into a Kind.
func Parse(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opaque", "none":
		return Opaque, nil
	case "invert":
		return Invert, nil
	case "blur":
		return Blur, nil
	case "posterize":
		return Posterize, nil
	case "gray", "grey":
		return Gray, nil
	}
	return Opaque, fmt.Errorf("unknown filter %q", s)
}

// Params tunes the filters that take an argument.
type Params struct {
	BlurRadius      int // Gaussian sigma in pixels
	PosterizeLevels int // Levels per channel, 2-255
}

// DefaultParams returns the filter arguments used when none are configured.
func DefaultParams() Params {
	return Params{
		BlurRadius:      4,
		PosterizeLevels: 4,
	}
}

// Selector holds the active filter.
type Selector struct {
	active Kind
}

// Select makes k the active filter.
func (s *Selector) Select(k Kind) {
	s.active = k
}

// Active returns the active filter.
func (s *Selector) Active() Kind {
	return s.active
}

// Reset reverts to the neutral filter.
func (s *Selector) Reset() {
	s.active = Opaque
}

// ForFrame returns the filter to apply to the next frame. noFilter is the
// override read once for this frame; when set, the selector reverts to
// Opaque before the frame is filtered.
func (s *Selector) ForFrame(noFilter bool) Kind {
	if noFilter {
		s.active = Opaque
	}
	return s.active
}
