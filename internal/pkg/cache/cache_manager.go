package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// CacheManager holds all application caches.
type CacheManager struct {
	// Planned itineraries, keyed by itinerary id. This is the in-memory
	// store the export endpoints read from; itineraries deliberately do
	// not survive a restart.
	Itineraries *UnifiedCache[*models.Itinerary]

	// Fetched auxiliary pools (restaurants, lodging, rentals), keyed by
	// pool name, so repeated requests don't refetch the collaborators.
	Pools *UnifiedCache[[]models.PointOfInterest]
}

// NewCacheManager creates a new cache manager with default TTLs
func NewCacheManager(logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheManager{
		Itineraries: NewUnifiedCache[*models.Itinerary](time.Hour, "itineraries", logger),
		Pools:       NewUnifiedCache[[]models.PointOfInterest](15*time.Minute, "pools", logger),
	}
}

// Global cache manager instance
var Cache = NewCacheManager(nil)
