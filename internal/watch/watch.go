// Package watch re-renders a file every time it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mcncl/jsonfizz/internal/errors"
)

// Run calls render once, then again every time path is written or replaced.
// The parent directory is watched so that editors which save by renaming a
// new file over path keep the watch alive. Run returns nil when path is gone
// after a remove or rename, or when ctx is done. Errors from render are
// logged and do not stop the loop.
func Run(ctx context.Context, path string, log *zap.Logger, render func() error) error {
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := os.Stat(path); err != nil {
		return errors.NewWatchError(fmt.Sprintf("failed to watch '%s'", path), err)
	}
	target := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewWatchError("failed to create file watcher", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.NewWatchError(fmt.Sprintf("failed to watch '%s'", path), err)
	}
	log.Info("watching for changes", zap.String("path", path))

	rerender := func() {
		if err := render(); err != nil {
			log.Error("render failed", zap.String("path", path), zap.Error(err))
		}
	}
	rerender()

	for {
		select {
		case <-ctx.Done():
			log.Debug("watch cancelled", zap.String("path", path))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			log.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				if !exists(target) {
					log.Info("file removed, stopping watch", zap.String("path", path))
					return nil
				}
				log.Info("file replaced, re-rendering", zap.String("path", path))
				rerender()
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				log.Info("file changed, re-rendering", zap.String("path", path))
				rerender()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
