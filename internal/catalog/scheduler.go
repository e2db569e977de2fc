package catalog

import (
	"context"
	"time"

	"github.com/bassista/go_mart/internal/logger"
	"github.com/bassista/go_mart/internal/repository"
)

// StartPersistenceScheduler runs a goroutine that periodically flushes a dirty
// working set to disk. On ctx.Done, it performs a final flush before returning.
// Returns a channel that is closed when the scheduler has completed shutdown.
func StartPersistenceScheduler(
	ctx context.Context,
	store Persistable,
	repo repository.Saver,
	interval time.Duration,
) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("persist").Debugf("starting persistence scheduler with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				// Final flush on shutdown - use background context to ensure it completes
				flushCatalog(context.Background(), store, repo)
				logger.WithComponent("persist").Info("persistence scheduler stopped after final flush")
				return
			case <-ticker.C:
				flushCatalog(ctx, store, repo)
			}
		}
	}()
	return done
}

// flushCatalog persists the working set to disk if dirty.
// It respects context cancellation to allow graceful shutdown.
func flushCatalog(ctx context.Context, store Persistable, repo repository.Saver) {
	if !store.IsDirty() {
		logger.WithComponent("persist").Tracef("working set is clean, skipping flush")
		return
	}

	if err := ctx.Err(); err != nil {
		logger.WithComponent("persist").Debugf("flush cancelled: %v", err)
		return
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		logger.WithComponent("persist").Errorf("persist error: failed to get snapshot: %v", err)
		return
	}

	snapshot.Metadata.LastUpdate = time.Now().UnixMilli()

	if err := repo.Save(ctx, &snapshot); err != nil {
		logger.WithComponent("persist").Errorf("persist error: failed to save: %v", err)
		return
	}

	store.ClearDirty()
	store.SetLastUpdate(snapshot.Metadata.LastUpdate)
	logger.WithComponent("persist").Info("catalog persisted to disk")
}
