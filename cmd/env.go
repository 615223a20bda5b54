package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/propmatch/internal/lookup"
	"github.com/sells-group/propmatch/internal/provider"
	"github.com/sells-group/propmatch/internal/store"
)

// lookupEnv holds the initialized store, providers, and lookup service
// needed by the lookup/providers/history/serve commands.
type lookupEnv struct {
	Store  *store.Store
	Lookup *lookup.Service
}

// Close releases resources held by the environment.
func (e *lookupEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv opens the store, builds the configured providers, and wires the
// lookup service. Callers should defer env.Close().
func initEnv(ctx context.Context) (*lookupEnv, error) {
	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	providers := provider.All(cfg.Providers)

	svc := lookup.New(providers, st,
		lookup.WithConcurrency(cfg.Lookup.Concurrency),
		lookup.WithCacheTTL(time.Duration(cfg.Lookup.CacheTTLHours)*time.Hour),
	)

	return &lookupEnv{Store: st, Lookup: svc}, nil
}
