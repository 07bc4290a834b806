package cli

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Reloader is the slice of the engine the watch loop drives.
type Reloader interface {
	Watch(ctx context.Context) (<-chan string, error)
	Reload(ctx context.Context) error
}

// settleDelay lets editors finish writing before the catalog is re-read.
var settleDelay = 100 * time.Millisecond

// WatchCatalog reloads the catalog each time the loader reports a change,
// until ctx is done. A failed reload keeps the previous catalog.
func WatchCatalog(ctx context.Context, engine Reloader, w io.Writer, logger *slog.Logger) error {
	watchCh, err := engine.Watch(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting Watcher")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watchCh:
			if !ok {
				return nil
			}
			logger.Info("Change detected, reloading catalog", "event", event)
			time.Sleep(settleDelay)
			if err := engine.Reload(ctx); err != nil {
				logger.Error("Catalog reload failed", "err", err)
				printSystemMessage(w, "Reload failed, keeping previous catalog: %v", err)
				continue
			}
			printSystemMessage(w, "Catalog reloaded after change in '%s'.", event)
		}
	}
}
