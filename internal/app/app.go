package app

import (
	"context"
	"errors"

	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/catalog"
	"github.com/bassista/go_mart/internal/config"
	"github.com/bassista/go_mart/internal/inventory"
	"github.com/bassista/go_mart/internal/repository"
	"github.com/bassista/go_mart/internal/stats"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config    *config.Config
	Repo      repository.Repository
	Catalog   catalog.Store
	Cache     cache.ResponseCache
	Events    *cache.Dispatcher
	Adjuster  *inventory.Adjuster
	Dashboard *stats.Dashboard

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, repo repository.Repository, store catalog.Store, responseCache cache.ResponseCache) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if store == nil {
		return nil, errors.New("catalog store is nil")
	}
	if responseCache == nil {
		return nil, errors.New("response cache is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:    cfg,
		Repo:      repo,
		Catalog:   store,
		Cache:     responseCache,
		Events:    cache.NewDispatcher(responseCache),
		Adjuster:  inventory.NewAdjuster(store),
		Dashboard: stats.NewDashboard(store),
		BaseCtx:   ctx,
		Cancel:    cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers launches the background goroutines: the catalog file watcher
// and the periodic persistence flush.
func (a *App) StartWatchers() error {
	if err := a.Repo.StartWatcher(a.BaseCtx, a.Catalog); err != nil {
		return err
	}

	catalog.StartPersistenceScheduler(a.BaseCtx, a.Catalog, a.Repo, a.Config.Data.PersistInterval)
	return nil
}
