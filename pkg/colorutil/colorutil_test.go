package colorutil

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#000000", want: color.NRGBA{A: 255}},
		{in: "#ff8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "ff8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "#f80", want: color.NRGBA{R: 255, G: 136, A: 255}},
		{in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) returned no error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.NRGBA{R: 255, G: 128, A: 255}); got != "#ff8000" {
		t.Errorf("Hex(opaque) = %q", got)
	}
	if got := Hex(color.NRGBA{R: 1, G: 2, B: 3, A: 4}); got != "#01020304" {
		t.Errorf("Hex(translucent) = %q", got)
	}
	if got := Hex(color.Black); got != "#000000" {
		t.Errorf("Hex(color.Black) = %q", got)
	}
}
