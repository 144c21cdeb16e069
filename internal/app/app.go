// Package app builds the service graph shared by the HTTP and MCP binaries.
package app

import (
	"fmt"
	"log"

	"github.com/yellowsense/jobswipe/internal/config"
	"github.com/yellowsense/jobswipe/internal/services"
	"github.com/yellowsense/jobswipe/internal/storage"
)

type App struct {
	Config    *config.Config
	Store     storage.Store
	Jobs      *services.Reconciler
	Bookmarks *services.BookmarkService
	Swipes    *services.SwipeService
	Lookup    *services.LookupService
}

func New(cfg *config.Config) (*App, error) {
	trigger, err := services.NewLoadTrigger(cfg.LoadTrigger, cfg.ScrollThreshold)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	fetcher := services.NewJobFetcher(cfg.JobsAPIURL, cfg.FetchTimeout, cfg.FetchRateLimit)
	jobs := services.NewReconciler(fetcher, trigger, cfg.MaxPages)
	bookmarks := services.NewBookmarkService(store)

	log.Printf("🔌 Jobs API %s, load trigger %q", cfg.JobsAPIURL, trigger.Name())

	return &App{
		Config:    cfg,
		Store:     store,
		Jobs:      jobs,
		Bookmarks: bookmarks,
		Swipes:    services.NewSwipeService(bookmarks, jobs, cfg.SwipeFeedback),
		Lookup:    services.NewLookupService(jobs, bookmarks),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
