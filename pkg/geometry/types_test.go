package geometry

import (
	"image"
	"testing"
)

func TestCenteredContains(t *testing.T) {
	frame := Centered(NewSize(1280, 720), NewSize(640, 480))
	if frame.X != 320 || frame.Y != 120 {
		t.Fatalf("Centered origin = (%v, %v), want (320, 120)", frame.X, frame.Y)
	}

	tests := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"top-left corner is inside", NewPoint2D(320, 120), true},
		{"center", NewPoint2D(640, 360), true},
		{"just before right edge", NewPoint2D(959.5, 300), true},
		{"right edge is outside", NewPoint2D(960, 300), false},
		{"bottom edge is outside", NewPoint2D(500, 600), false},
		{"left of frame", NewPoint2D(319.9, 300), false},
		{"above frame", NewPoint2D(500, 119), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frame.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCenteredSmallerOuter(t *testing.T) {
	// A window smaller than the frame pushes the frame origin negative.
	frame := Centered(NewSize(600, 400), NewSize(640, 480))
	if frame.X != -20 || frame.Y != -40 {
		t.Errorf("Centered origin = (%v, %v), want (-20, -40)", frame.X, frame.Y)
	}
	if !frame.Contains(NewPoint2D(0, 0)) {
		t.Error("expected canvas origin to be inside an oversized frame")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   Rect
		want Rect
	}{
		{NewRect(100, 100, 50, -80), NewRect(100, 20, 50, 80)},
		{NewRect(100, 100, -50, 80), NewRect(50, 100, 50, 80)},
		{NewRect(100, 100, -10, -10), NewRect(90, 90, 10, 10)},
		{NewRect(1, 2, 3, 4), NewRect(1, 2, 3, 4)},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%v.Normalize() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestImageRect(t *testing.T) {
	got := NewRect(10.5, 20.2, -5, 10.1).ImageRect()
	want := image.Rect(5, 20, 11, 31)
	if got != want {
		t.Errorf("ImageRect() = %v, want %v", got, want)
	}
}
