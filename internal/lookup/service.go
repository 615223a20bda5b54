// Package lookup orchestrates a property lookup: it parses the query, fans
// out to the enabled providers, matches each provider's candidate rows
// against the query, and picks one best estimate per provider.
package lookup

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/propmatch/internal/model"
	"github.com/sells-group/propmatch/internal/provider"
	"github.com/sells-group/propmatch/pkg/address"
)

// ErrUnparseable is returned when no house number can be identified in the
// query string.
var ErrUnparseable = eris.New("lookup: address could not be parsed")

// Store is the persistence surface the lookup service needs.
type Store interface {
	GetCachedLookup(ctx context.Context, fingerprint string) (*model.LookupResult, bool, error)
	PutCachedLookup(ctx context.Context, fingerprint string, result *model.LookupResult, ttl time.Duration) error
	ProviderEnabled(ctx context.Context, name string) (bool, error)
	RecordLookup(ctx context.Context, query string, resultCount int) error
}

// Service runs lookups across a set of providers.
type Service struct {
	providers   []provider.Provider
	store       Store
	concurrency int
	cacheTTL    time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithConcurrency caps how many providers are queried in parallel.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithCacheTTL sets how long lookup results stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// New creates a lookup Service. store may be nil, which disables caching,
// toggles, and history.
func New(providers []provider.Provider, store Store, opts ...Option) *Service {
	s := &Service{
		providers:   providers,
		store:       store,
		concurrency: 4,
		cacheTTL:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves one raw address query to at most one estimate per
// provider. A single provider failing never fails the lookup.
func (s *Service) Lookup(ctx context.Context, raw string) (*model.LookupResult, error) {
	parsed := address.Parse(raw)
	if !parsed.Valid {
		return nil, ErrUnparseable
	}

	fp := Fingerprint(parsed)
	if s.store != nil {
		cached, ok, err := s.store.GetCachedLookup(ctx, fp)
		if err != nil {
			zap.L().Warn("lookup cache read failed", zap.Error(err))
		} else if ok {
			zap.L().Debug("lookup cache hit", zap.String("query", raw))
			return cached, nil
		}
	}

	start := time.Now()
	results := make([]*model.Estimate, len(s.providers))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)

	for i, p := range s.providers {
		eg.Go(func() error {
			if !p.Available() {
				return nil
			}
			if s.store != nil {
				enabled, err := s.store.ProviderEnabled(gCtx, p.Name())
				if err != nil {
					zap.L().Warn("provider toggle read failed",
						zap.String("provider", p.Name()),
						zap.Error(err),
					)
				} else if !enabled {
					zap.L().Debug("provider disabled, skipping", zap.String("provider", p.Name()))
					return nil
				}
			}

			rows, err := p.Search(gCtx, raw)
			if err != nil {
				zap.L().Warn("provider search failed",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
				return nil //nolint:nilerr // one provider failing must not fail the lookup
			}
			results[i] = selectBest(parsed, raw, rows)
			return nil
		})
	}
	_ = eg.Wait()

	result := &model.LookupResult{
		Query:     raw,
		Parsed:    parsed,
		CreatedAt: time.Now().UTC(),
	}
	for _, est := range results {
		if est != nil {
			result.Estimates = append(result.Estimates, *est)
		}
	}
	sort.Slice(result.Estimates, func(i, j int) bool {
		return result.Estimates[i].Provider < result.Estimates[j].Provider
	})

	if s.store != nil {
		if err := s.store.PutCachedLookup(ctx, fp, result, s.cacheTTL); err != nil {
			zap.L().Warn("lookup cache write failed", zap.Error(err))
		}
		if err := s.store.RecordLookup(ctx, raw, len(result.Estimates)); err != nil {
			zap.L().Warn("lookup history write failed", zap.Error(err))
		}
	}

	zap.L().Info("lookup complete",
		zap.String("query", raw),
		zap.Int("estimates", len(result.Estimates)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// selectBest picks the row from one provider's result set that best matches
// the query: highest confidence tier first, Jaro-Winkler similarity of the
// source display address against the raw query as the tie-break. When the
// winning verdict asks for a unit fallback, a matching unit-less row from
// the same set is preferred if one exists.
func selectBest(query address.ParsedAddress, raw string, rows []model.Estimate) *model.Estimate {
	rawLower := strings.ToLower(strings.TrimSpace(raw))

	var (
		best         *model.Estimate
		bestRank     int
		bestSim      float64
		buildingBest *model.Estimate
	)

	for i := range rows {
		row := rows[i]
		verdict := address.Match(query, row.Parsed)
		if !verdict.Match {
			continue
		}
		row.Confidence = verdict.Confidence
		row.UnitFallback = verdict.UnitFallback

		rank := confidenceRank(verdict.Confidence)
		sim := smetrics.JaroWinkler(rawLower, strings.ToLower(row.SourceAddress), 0.7, 4)

		if best == nil || rank > bestRank || (rank == bestRank && sim > bestSim) {
			best, bestRank, bestSim = &row, rank, sim
		}
		if row.Parsed.UnitNum == "" && buildingBest == nil {
			buildingBest = &row
		}
	}

	if best != nil && best.UnitFallback && buildingBest != nil {
		return buildingBest
	}
	return best
}

func confidenceRank(c address.Confidence) int {
	switch c {
	case address.ConfidenceHigh:
		return 3
	case address.ConfidenceMedium:
		return 2
	case address.ConfidenceLow:
		return 1
	default:
		return 0
	}
}
