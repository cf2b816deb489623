package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/wallflower/internal/appearance"
)

// HostProber reports the host color scheme, or ok=false when it cannot tell.
type HostProber interface {
	Probe() (mode appearance.Mode, source string, ok bool)
}

// StartHostWatcher re-checks the host color scheme every interval and
// resets the theme store when it changes. A non-positive interval disables
// the watcher. It returns immediately.
func StartHostWatcher(ctx context.Context, store *appearance.Store, prober HostProber, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 || store == nil || prober == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			syncHost(store, prober, logger)
		}
	}()
}

func syncHost(store *appearance.Store, prober HostProber, logger *slog.Logger) bool {
	mode, source, ok := prober.Probe()
	if !ok {
		return false
	}
	if store.SyncHost(mode) {
		logger.Info("host appearance changed", "mode", mode, "source", source)
		return true
	}
	return false
}
