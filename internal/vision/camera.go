package vision

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"photobooth/internal/filter"

	"gocv.io/x/gocv"
)

// Options configures a frame source.
type Options struct {
	Device int
	Size   image.Point // Output frame size
	FPS    int
	Mirror bool
	Params filter.Params
}

// Camera reads frames from a webcam in the background and keeps the most
// recent one. Frame is safe to call from any goroutine.
type Camera struct {
	opts    Options
	capture *gocv.VideoCapture

	mu     sync.Mutex
	latest gocv.Mat
	have   bool
}

// OpenCamera opens the webcam at opts.Device.
func OpenCamera(opts Options) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(opts.Device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", opts.Device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %d is not available", opts.Device)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, float64(opts.Size.X))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(opts.Size.Y))
	if opts.FPS > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(opts.FPS))
	}
	log.Printf("Camera %d opened: %.0fx%.0f", opts.Device,
		capture.Get(gocv.VideoCaptureFrameWidth), capture.Get(gocv.VideoCaptureFrameHeight))

	return &Camera{
		opts:    opts,
		capture: capture,
		latest:  gocv.NewMat(),
	}, nil
}

// Run reads frames until ctx is cancelled, calling onFrame after each new
// frame is stored. Read failures are logged and retried.
func (c *Camera) Run(ctx context.Context, onFrame func()) error {
	raw := gocv.NewMat()
	defer raw.Close()

	interval := time.Second / 30
	if c.opts.FPS > 0 {
		interval = time.Second / time.Duration(c.opts.FPS)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if ok := c.capture.Read(&raw); !ok || raw.Empty() {
			failures++
			if failures == 1 || failures%100 == 0 {
				log.Printf("Camera %d: no frame (%d consecutive failures)", c.opts.Device, failures)
			}
			continue
		}
		failures = 0

		frame := conform(raw, c.opts.Size, c.opts.Mirror)
		c.mu.Lock()
		c.latest.Close()
		c.latest = frame
		c.have = true
		c.mu.Unlock()

		if onFrame != nil {
			onFrame()
		}
	}
}

// Frame returns the latest frame with kind applied. It reports false until
// the first frame has been read.
func (c *Camera) Frame(kind filter.Kind) (image.Image, bool) {
	c.mu.Lock()
	if !c.have {
		c.mu.Unlock()
		return nil, false
	}
	src := c.latest.Clone()
	c.mu.Unlock()
	defer src.Close()

	return filtered(src, kind, c.opts.Params)
}

// Grab reads a single frame synchronously, for tools that do not run the
// background loop. A few frames are discarded first so auto exposure can
// settle.
func (c *Camera) Grab(warmup int) (image.Image, error) {
	raw := gocv.NewMat()
	defer raw.Close()
	for i := 0; i <= warmup; i++ {
		if ok := c.capture.Read(&raw); !ok {
			return nil, fmt.Errorf("camera %d: read failed", c.opts.Device)
		}
	}
	if raw.Empty() {
		return nil, fmt.Errorf("camera %d: empty frame", c.opts.Device)
	}

	frame := conform(raw, c.opts.Size, c.opts.Mirror)
	c.mu.Lock()
	c.latest.Close()
	c.latest = frame
	c.have = true
	c.mu.Unlock()

	img, ok := c.Frame(filter.Opaque)
	if !ok {
		return nil, fmt.Errorf("camera %d: frame conversion failed", c.opts.Device)
	}
	return img, nil
}

// Close releases the camera.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest.Close()
	c.have = false
	return c.capture.Close()
}

func filtered(src gocv.Mat, kind filter.Kind, p filter.Params) (image.Image, bool) {
	dst, err := Apply(src, kind, p)
	if err != nil {
		log.Printf("Filter %v failed: %v", kind, err)
		return nil, false
	}
	defer dst.Close()

	img, err := matToImage(dst)
	if err != nil {
		log.Printf("Frame conversion failed: %v", err)
		return nil, false
	}
	return img, true
}
