package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geo"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/osm"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/themes"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-wayfarer/internal/pkg/cache"
)

// CatalogService owns the immutable base POI catalog and acquires the
// auxiliary pools (restaurants, lodging, rentals). Collaborator failures
// are converted to base-catalog fallbacks here, so the planning core only
// ever sees pools that may be empty, never errors.
type CatalogService struct {
	base     []models.PointOfInterest
	fetcher  osm.Fetcher
	taxonomy *themes.Taxonomy
	filter   *themes.Filter
	regions  []string
	caches   *cache.CacheManager
	logger   *zap.Logger
}

func NewCatalogService(
	base []models.PointOfInterest,
	fetcher osm.Fetcher,
	taxonomy *themes.Taxonomy,
	filter *themes.Filter,
	regions []string,
	caches *cache.CacheManager,
	logger *zap.Logger,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if caches == nil {
		caches = cache.Cache
	}
	return &CatalogService{
		base:     base,
		fetcher:  fetcher,
		taxonomy: taxonomy,
		filter:   filter,
		regions:  regions,
		caches:   caches,
		logger:   logger,
	}
}

// Base returns the loaded catalog. Callers must treat it as read-only;
// every downstream filter works on fresh slices.
func (s *CatalogService) Base() []models.PointOfInterest {
	return s.base
}

func (s *CatalogService) Restaurants(ctx context.Context) []models.PointOfInterest {
	return s.pool(ctx, "restaurants", s.taxonomy.Themes["food"])
}

func (s *CatalogService) Lodging(ctx context.Context) []models.PointOfInterest {
	return s.pool(ctx, "lodging", s.taxonomy.Lodging)
}

func (s *CatalogService) Rentals(ctx context.Context) []models.PointOfInterest {
	return s.pool(ctx, "rentals", s.taxonomy.Rentals)
}

func (s *CatalogService) Transit(ctx context.Context) []models.PointOfInterest {
	return s.pool(ctx, "transit", s.taxonomy.Transit)
}

// StartPoints proposes up to count transit and housing points near origin,
// closest first, for clients that want a sensible place to begin a tour.
func (s *CatalogService) StartPoints(ctx context.Context, origin models.Coordinate, count int) []models.PointOfInterest {
	pool := s.Transit(ctx)
	out := make([]models.PointOfInterest, len(pool))
	copy(out, pool)
	sort.SliceStable(out, func(i, j int) bool {
		return geo.Distance(origin, out[i].Coord) < geo.Distance(origin, out[j].Coord)
	})
	if count > 0 && len(out) > count {
		out = out[:count]
	}
	return out
}

// pool fetches a named category pool, caching results and degrading to the
// base catalog subset when the fetcher is absent or fails. A fetch failure
// therefore looks identical to sparse data downstream.
func (s *CatalogService) pool(ctx context.Context, name string, categories []string) []models.PointOfInterest {
	if cached, found := s.caches.Pools.Get(name); found {
		return cached
	}

	if s.fetcher != nil {
		pois, err := s.fetcher.FetchByCategory(ctx, s.regions, categories)
		if err == nil && len(pois) > 0 {
			s.caches.Pools.Set(name, pois)
			return pois
		}
		if err != nil {
			if metrics.Initialized() {
				metrics.Get().POIFetchErrorsTotal.Add(ctx, 1)
			}
			s.logger.Warn("pool fetch failed, falling back to base catalog",
				zap.String("pool", name),
				zap.Error(err))
		}
	}

	fallback := s.filter.ByCategories(s.base, categories)
	s.caches.Pools.Set(name, fallback)
	return fallback
}
