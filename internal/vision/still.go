package vision

import (
	"fmt"
	"image"

	"photobooth/internal/filter"

	"gocv.io/x/gocv"
)

// Still serves a single image file as if it were a camera. It stands in
// for the webcam on machines without one.
type Still struct {
	frame  gocv.Mat
	params filter.Params
}

// OpenStill reads path and conforms it to opts.Size.
func OpenStill(path string, opts Options) (*Still, error) {
	raw := gocv.IMRead(path, gocv.IMReadColor)
	defer raw.Close()
	if raw.Empty() {
		return nil, fmt.Errorf("failed to read still image %s", path)
	}
	return &Still{
		frame:  conform(raw, opts.Size, opts.Mirror),
		params: opts.Params,
	}, nil
}

// NewStill wraps an in-memory image.
func NewStill(img image.Image, opts Options) *Still {
	raw := imageToMat(img)
	defer raw.Close()
	return &Still{
		frame:  conform(raw, opts.Size, opts.Mirror),
		params: opts.Params,
	}
}

// Frame returns the still with kind applied.
func (s *Still) Frame(kind filter.Kind) (image.Image, bool) {
	return filtered(s.frame, kind, s.params)
}

// Close releases the image.
func (s *Still) Close() error {
	return s.frame.Close()
}
