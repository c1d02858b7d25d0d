package app

import (
	"context"
	"net/http"

	"github.com/fsnotify/fsnotify"
)

func (a *App) HealthMux() http.Handler { return a.healthMux() }

func (a *App) WatchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) error {
	return a.watchLoop(ctx, watcher, target)
}
