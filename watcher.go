package dompet

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchTokenFile revalidates the session whenever the token file changes on
// disk, so a logout in another process collapses this one's session too, and
// a login in another process flips it in.
// This is best effort: callers should treat a setup error as a degraded mode
// and fall back to interval revalidation, not abort.
//
// The parent directory is watched rather than the file itself because the
// store replaces the token via rename and removes it on clear.
func WatchTokenFile(ctx context.Context, path string, session *Controller, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("token file changed externally (%s), revalidating", event.Op)
				session.Revalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("token watcher error: %v", err)
			}
		}
	}()

	return nil
}
