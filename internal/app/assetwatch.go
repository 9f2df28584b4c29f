package app

import (
	"context"
	"os"
	"time"
)

// AssetWatcher polls a set of files and calls a callback when any of them
// changes on disk. It lets stamp images be edited while the booth runs.
type AssetWatcher struct {
	paths         []string
	checkInterval time.Duration
	modTimes      map[string]time.Time
	onChange      func(path string) // Called from the watcher goroutine
}

// NewAssetWatcher records the current modification times of paths.
// Files that do not exist yet are watched for creation.
func NewAssetWatcher(paths []string, checkInterval time.Duration) *AssetWatcher {
	w := &AssetWatcher{
		paths:         paths,
		checkInterval: checkInterval,
		modTimes:      make(map[string]time.Time, len(paths)),
	}
	for _, p := range paths {
		w.modTimes[p] = modTime(p)
	}
	return w
}

// OnChange sets the callback invoked with the path of a changed file.
// The callback runs on the watcher goroutine; synchronize UI updates.
func (w *AssetWatcher) OnChange(callback func(path string)) {
	w.onChange = callback
}

// Run polls until ctx is cancelled.
func (w *AssetWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, p := range w.Check() {
				if w.onChange != nil {
					w.onChange(p)
				}
			}
		}
	}
}

// Check returns the paths whose modification time changed since the last
// check and records the new times.
func (w *AssetWatcher) Check() []string {
	var changed []string
	for _, p := range w.paths {
		t := modTime(p)
		if !t.Equal(w.modTimes[p]) {
			w.modTimes[p] = t
			changed = append(changed, p)
		}
	}
	return changed
}

// modTime returns the zero time for missing files.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
