// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"photobooth/pkg/colorutil"
)

const prefsFile = "preferences.json"

// Keys used by the photobooth UI.
const (
	KeyBorderColor = "style.border"
	KeyFillColor   = "style.fill"
	KeyThickness   = "style.thickness"
	KeySaveDir     = "export.dir"
	KeyNoFilter    = "filter.none"
	KeyWindowW     = "window.width"
	KeyWindowH     = "window.height"
)

// Prefs holds the booth's remembered settings: the last shape style, the
// "No Filter" state, the save directory and the window size. Values are kept
// as decoded JSON so unknown keys written by other versions survive a save.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads photobooth/preferences.json from the user config directory.
func Load() *Prefs {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return LoadFrom(filepath.Join(dir, "photobooth", prefsFile))
}

// LoadFrom reads preferences from path. A missing or unreadable file
// gives empty preferences that will be saved to path.
func LoadFrom(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p.values); err != nil || p.values == nil {
		p.values = make(map[string]interface{})
	}
	return p
}

// Save writes the preferences file, creating its directory if needed.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// lookup returns the value stored under key if it has type T. Values
// decoded from JSON are float64, string or bool.
func lookup[T any](p *Prefs, key string) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key].(T)
	return v, ok
}

func (p *Prefs) set(key string, val interface{}) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// FloatWithFallback returns a number preference, or fallback if unset.
func (p *Prefs) FloatWithFallback(key string, fallback float64) float64 {
	if v, ok := lookup[float64](p, key); ok {
		return v
	}
	return fallback
}

// SetFloat stores a number preference.
func (p *Prefs) SetFloat(key string, val float64) { p.set(key, val) }

// String returns a string preference, or "" if unset.
func (p *Prefs) String(key string) string {
	v, _ := lookup[string](p, key)
	return v
}

// SetString stores a string preference.
func (p *Prefs) SetString(key, val string) { p.set(key, val) }

// Bool returns a bool preference, or fallback if unset.
func (p *Prefs) Bool(key string, fallback bool) bool {
	if v, ok := lookup[bool](p, key); ok {
		return v
	}
	return fallback
}

// SetBool stores a bool preference.
func (p *Prefs) SetBool(key string, val bool) { p.set(key, val) }

// Color returns a colour stored as a hex string, or fallback if unset or
// malformed.
func (p *Prefs) Color(key string, fallback color.NRGBA) color.NRGBA {
	s := p.String(key)
	if s == "" {
		return fallback
	}
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// SetColor stores a colour as a hex string.
func (p *Prefs) SetColor(key string, c color.Color) {
	p.SetString(key, colorutil.Hex(c))
}
