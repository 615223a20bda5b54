// Package provider implements clients for external property-data sources.
// Each provider turns a raw address query into candidate estimate rows with
// parsed addresses attached; deciding which row denotes the queried property
// belongs to the lookup layer.
package provider

import (
	"context"

	"github.com/sells-group/propmatch/internal/config"
	"github.com/sells-group/propmatch/internal/model"
)

// Provider represents a single property-data backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.Estimate, error)
	Available() bool
}

// All constructs every known provider from configuration, skipping the ones
// disabled there. Runtime toggles on top of this are the store's concern.
func All(cfg config.ProvidersConfig) []Provider {
	var providers []Provider
	if cfg.HomeEstimate.Enabled {
		providers = append(providers, NewHomeEstimate(cfg.HomeEstimate))
	}
	if cfg.QuickVal.Enabled {
		providers = append(providers, NewQuickVal(cfg.QuickVal))
	}
	return providers
}
