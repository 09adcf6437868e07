package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultWatchDebounce is how long a burst of writes must settle before a
// reload is triggered.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watch calls onChange every time the file at path is written, created or
// renamed into place, until ctx is done. The containing directory is watched
// so editors that save atomically are handled.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create file watcher")
	}

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return pkgerrors.Wrapf(err, "failed to watch %s", dir)
	}

	go watchLoop(ctx, w, path, debounce, onChange)

	return nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration, onChange func()) {
	defer w.Close()

	absPath, _ := filepath.Abs(path)
	baseName := filepath.Base(path)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}

			eventAbs, _ := filepath.Abs(event.Name)
			if filepath.Base(event.Name) != baseName && eventAbs != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			timer = nil
			fire = nil
			logrus.WithField("path", path).Debug("config file changed")
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logrus.WithField("path", path).Warnf("config watcher error: %v", err)
		}
	}
}
