package main

import (
	"fmt"

	"github.com/rnakata/phraseloop/internal/api"
	"github.com/rnakata/phraseloop/internal/assetcache"
	"github.com/rnakata/phraseloop/internal/blob"
	"github.com/rnakata/phraseloop/internal/completion"
	"github.com/rnakata/phraseloop/internal/config"
	"github.com/rnakata/phraseloop/internal/network"
	"github.com/rnakata/phraseloop/internal/prefetch"
	"github.com/rnakata/phraseloop/internal/storage"
)

const storageNamespace = "phraseloop"

// app bundles the wired-up components every subcommand needs. Close releases
// the storage handle.
type app struct {
	cfg        *config.Config
	store      *storage.SQLiteStore
	client     *api.Client
	probe      network.Probe
	queue      *completion.Queue
	cache      *assetcache.Cache
	prefetcher *prefetch.Manager
}

func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := storage.OpenSQLite(cfg.Storage.Path, storageNamespace)
	if err != nil {
		return nil, fmt.Errorf("storage.OpenSQLite(%s) > %w", cfg.Storage.Path, err)
	}

	client := api.NewClient(cfg.API.BaseURL)
	probe := network.NewHTTPProbe(cfg.Network.ProbeURL, network.Transport(cfg.Network.Transport))
	queue := completion.NewQueue(store, client, completion.Options{
		MaxSize:    cfg.Queue.MaxSize,
		MaxRetries: cfg.Queue.MaxRetries,
	})
	cache := assetcache.New(store, blob.NewHTTPStore(), cfg.Cache.Directory)
	scheduler := prefetch.NewKVScheduler(store, cfg.Prefetch.BackgroundRestricted)
	prefetcher := prefetch.NewManager(cache, probe, store, scheduler, prefetch.Options{
		MinInterval:    cfg.Prefetch.Interval(),
		TrimMaxEntries: cfg.Cache.MaxEntries,
		TrimMaxAge:     cfg.Cache.MaxAge(),
	})

	return &app{
		cfg:        cfg,
		store:      store,
		client:     client,
		probe:      probe,
		queue:      queue,
		cache:      cache,
		prefetcher: prefetcher,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		fmt.Printf("Warning: failed to close storage: %v\n", err)
	}
}
