package main

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/gamblecodez/drops-cli/internal/classify"
	"github.com/gamblecodez/drops-cli/internal/dedup"
	"github.com/gamblecodez/drops-cli/internal/registry"
	"github.com/gamblecodez/drops-cli/internal/resolve"
	"github.com/gamblecodez/drops-cli/internal/store"
)

// pipelineEnv holds the initialized store and classifier shared by the
// classify/batch/serve/watch commands.
type pipelineEnv struct {
	Store      store.Store
	Classifier *classify.Classifier
	Source     registry.Source

	tasks sync.WaitGroup
}

// Go runs fn on a tracked background goroutine. Close waits for all
// tracked goroutines before releasing the store.
func (pe *pipelineEnv) Go(fn func()) {
	pe.tasks.Add(1)
	go func() {
		defer pe.tasks.Done()
		fn()
	}()
}

// Close waits for background work and releases resources held by the
// pipeline environment.
func (pe *pipelineEnv) Close() {
	pe.tasks.Wait()
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.Path
		if path == "" {
			path = "drops.db"
		}
		return store.NewSQLite(path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnv sets up the store, registry source, resolver, and classifier.
// Callers should defer env.Close().
func initEnv(ctx context.Context) (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var source registry.Source
	if cfg.Registry.Path != "" {
		source = registry.NewFileSource(cfg.Registry.Path)
	} else {
		source = registry.NewStoreSource(st)
	}

	resolver := resolve.New(cfg.Resolver)
	detector := dedup.New(st, time.Duration(cfg.Dedup.WindowDays)*24*time.Hour)

	classifier := classify.New(st, resolver, source, detector, classify.Options{
		ModelName:    cfg.Pipeline.ModelName,
		ModelVersion: cfg.Pipeline.ModelVersion,
		Concurrency:  cfg.Batch.Concurrency,
	})

	return &pipelineEnv{
		Store:      st,
		Classifier: classifier,
		Source:     source,
	}, nil
}
