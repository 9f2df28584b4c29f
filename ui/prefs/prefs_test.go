package prefs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photobooth", prefsFile)

	p := LoadFrom(path)
	p.SetColor(KeyFillColor, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	p.SetString(KeyThickness, "3")
	p.SetString(KeySaveDir, "/tmp/shots")
	p.SetBool(KeyNoFilter, true)
	p.SetFloat(KeyWindowW, 1280)
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	q := LoadFrom(path)
	if got := q.Color(KeyFillColor, color.NRGBA{}); got != (color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}) {
		t.Errorf("fill = %v", got)
	}
	if got := q.String(KeyThickness); got != "3" {
		t.Errorf("thickness = %q", got)
	}
	if got := q.String(KeySaveDir); got != "/tmp/shots" {
		t.Errorf("save dir = %q", got)
	}
	if !q.Bool(KeyNoFilter, false) {
		t.Error("no-filter flag lost")
	}
	if got := q.FloatWithFallback(KeyWindowW, 0); got != 1280 {
		t.Errorf("window width = %v", got)
	}
}

func TestFallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, prefsFile)
	if err := os.WriteFile(path, []byte(`{"style.border": "chartreuse", "filter.none": "yes", "window.width": "wide"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	p := LoadFrom(path)
	fallback := color.NRGBA{A: 255}
	if got := p.Color(KeyBorderColor, fallback); got != fallback {
		t.Errorf("malformed colour = %v, want fallback", got)
	}
	if got := p.Color(KeyFillColor, fallback); got != fallback {
		t.Errorf("missing colour = %v, want fallback", got)
	}
	if !p.Bool(KeyNoFilter, true) {
		t.Error("non-bool value should give the fallback")
	}
	if got := p.FloatWithFallback(KeyWindowH, 720); got != 720 {
		t.Errorf("missing float = %v", got)
	}
	if got := p.FloatWithFallback(KeyWindowW, 1024); got != 1024 {
		t.Errorf("non-number value = %v, want the fallback", got)
	}
	if got := p.String(KeyNoFilter); got != "yes" {
		t.Errorf("string value = %q", got)
	}
}

func TestLoadFromNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := LoadFrom(path)
	p.SetBool(KeyNoFilter, true)
	if !p.Bool(KeyNoFilter, false) {
		t.Error("value not stored")
	}
}

func TestLoadFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := LoadFrom(path)
	p.SetString(KeySaveDir, "x")
	if err := p.Save(); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
}
