package panels

import (
	"os"
	"path/filepath"
	"testing"

	"photobooth/internal/app"
	"photobooth/internal/filter"
	"photobooth/internal/overlay"
	"photobooth/ui/prefs"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func newPanel(t *testing.T, saved string) (*ControlPanel, *app.State, *prefs.Prefs) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	path := filepath.Join(t.TempDir(), "preferences.json")
	if saved != "" {
		if err := os.WriteFile(path, []byte(saved), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p := prefs.LoadFrom(path)
	state := app.NewState(nil, app.Options{Style: overlay.DefaultStyle()})
	return NewControlPanel(state, p, nil), state, p
}

func TestRestorePrefsKeepsSavedThickness(t *testing.T) {
	cp, state, p := newPanel(t, `{"style.thickness": "5"}`)

	if got := p.String(prefs.KeyThickness); got != "5" {
		t.Fatalf("building the panel changed the saved thickness to %q", got)
	}
	if got := cp.thicknessSelect.Selected; got != "1" {
		t.Errorf("initial selection = %q, want the session style", got)
	}

	cp.RestorePrefs()
	if got := state.CurrentStyle().Thickness; got != 5 {
		t.Errorf("thickness after restore = %v, want 5", got)
	}
	if got := cp.thicknessSelect.Selected; got != "5" {
		t.Errorf("selection after restore = %q", got)
	}
}

func TestThicknessSelectionUpdatesSessionAndPrefs(t *testing.T) {
	cp, state, p := newPanel(t, "")

	cp.thicknessSelect.SetSelected("None")
	if got := state.CurrentStyle().Thickness; got != overlay.ThicknessNone {
		t.Errorf("thickness = %v, want None", got)
	}
	if got := p.String(prefs.KeyThickness); got != "None" {
		t.Errorf("saved thickness = %q", got)
	}
}

func TestFilterButtonsFollowSession(t *testing.T) {
	cp, state, _ := newPanel(t, "")

	test.Tap(cp.filterButtons[filter.Blur])
	if got := state.ActiveFilter(); got != filter.Blur {
		t.Fatalf("active filter = %v", got)
	}
	if cp.filterButtons[filter.Blur].Importance != widget.HighImportance {
		t.Error("selected filter not highlighted")
	}
	if cp.filterButtons[filter.Opaque].Importance == widget.HighImportance {
		t.Error("previous filter still highlighted")
	}
}
