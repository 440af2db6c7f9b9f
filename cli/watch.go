package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile runs fn once, then again after every write to path, until ctx
// is done. Errors from fn are passed to report and do not stop the watch.
func watchFile(ctx context.Context, path string, logger *slog.Logger, fn func() error, report func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ioError(fmt.Errorf("resolving %s: %w", path, err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ioError(fmt.Errorf("starting watcher: %w", err))
	}
	defer func() { _ = watcher.Close() }()

	// Editors often save by replacing the file, which drops a watch on the
	// file itself, so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return ioError(fmt.Errorf("watching %s: %w", filepath.Dir(abs), err))
	}
	logger.Debug("[CLI] watching", "path", abs)

	if err := fn(); err != nil {
		report(err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("[CLI] source changed", "path", event.Name, "op", event.Op.String())
			if err := fn(); err != nil {
				report(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("[CLI] watch error", "error", err)
		}
	}
}
