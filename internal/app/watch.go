package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// ErrWatcherClosed is returned when the file watcher stops delivering
// events before the context is cancelled.
var ErrWatcherClosed = errors.New("model watcher closed")

// Watch generates once and then regenerates whenever the model file
// changes, until ctx is cancelled. Failed runs are logged and watching
// continues.
func (a *App) Watch(ctx context.Context) error {
	ctx = a.withLogger(ctx)

	target, err := filepath.Abs(a.config.ModelPath)
	if err != nil {
		return fmt.Errorf("resolve model path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors replace files on save, so the directory is watched.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.config.HealthcheckPort > 0 {
		if err := a.serveHealthcheck(gctx, g, a.config.HealthcheckPort); err != nil {
			return err
		}
	}

	a.regenerate(gctx)
	g.Go(func() error {
		return a.watchLoop(gctx, watcher, target)
	})
	return g.Wait()
}

func (a *App) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) error {
	a.logger.Info("Watching model for changes.", "path", target, "debounce", a.config.Debounce)
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			a.logger.Debug("Model changed.", "op", event.Op.String())
			fire = time.After(a.config.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			a.logger.Error("Watcher error.", "error", err)
		case <-fire:
			fire = nil
			a.regenerate(ctx)
		}
	}
}

func (a *App) regenerate(ctx context.Context) {
	if _, err := a.Generate(ctx); err != nil {
		a.logger.Error("Generation failed; waiting for the next change.", "error", err)
	}
}
