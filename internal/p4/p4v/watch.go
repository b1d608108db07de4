package p4v

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// WatchDebounce is how long the settings file must stay quiet before a
// change is reported. P4V rewrites it in several steps.
var WatchDebounce = 300 * time.Millisecond

// Watch calls onChange whenever the file at path is written, created or
// renamed, until ctx is done. The parent directory is watched so a file
// replaced wholesale is still seen; it must already exist.
func Watch(ctx context.Context, path string, log logrus.FieldLogger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &WatchError{Path: path, Cause: err}
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return &WatchError{Path: path, Cause: err}
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					if debounce != nil {
						debounce.Stop()
					}
					debounce = time.AfterFunc(WatchDebounce, onChange)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("p4v settings watch error")
			}
		}
	}()
	return nil
}

// WatchSettings watches the settings file Settings reads.
func (l *Launcher) WatchSettings(ctx context.Context, onChange func()) error {
	return Watch(ctx, l.SettingsPath(), l.log, onChange)
}
