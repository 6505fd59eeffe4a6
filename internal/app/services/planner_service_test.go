package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/scheduler"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/themes"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/pkg/cache"
)

var planClock = time.Date(2024, 11, 4, 10, 30, 0, 0, time.UTC)

func foodPOI(name string, lon float64, tags int) models.PointOfInterest {
	t := map[string]string{}
	keys := []string{"cuisine", "opening_hours", "website", "phone", "addr:street"}
	for i := 0; i < tags && i < len(keys); i++ {
		t[keys[i]] = "x"
	}
	return models.PointOfInterest{
		Name:     name,
		Category: "restaurant",
		Coord:    models.Coordinate{Lat: 0, Lon: lon},
		Tags:     t,
	}
}

func testPlanner(t *testing.T, base []models.PointOfInterest) *PlannerService {
	t.Helper()
	taxonomy, err := themes.Default()
	require.NoError(t, err)
	filter := themes.NewFilter(taxonomy, nil)
	catalog := NewCatalogService(base, nil, taxonomy, filter, nil, cache.NewCacheManager(nil), nil)
	return NewPlannerService(catalog, filter, scheduler.New(nil), nil, nil, 3, nil).
		WithClock(func() time.Time { return planClock })
}

func TestPlannerServicePlan(t *testing.T) {
	ctx := context.Background()
	base := []models.PointOfInterest{
		foodPOI("Cafe Medina", 0.001, 4),
		foodPOI("Salt Tasting Room", 0.002, 4),
		foodPOI("Sparse Diner", 0.003, 1), // dropped by the popularity filter
		{Name: "Stanley Park", Category: "park", Coord: models.Coordinate{Lat: 0, Lon: 0.004}, Tags: map[string]string{"a": "1", "b": "2", "c": "3"}},
	}

	req := models.TourRequest{
		Days:     1,
		Theme:    models.ThemeFood,
		POICount: 2,
		Start:    models.Coordinate{Lat: 0, Lon: 0},
		Mode:     models.ModeWalk,
	}

	t.Run("it plans a themed itinerary", func(t *testing.T) {
		itinerary, err := testPlanner(t, base).Plan(ctx, req)
		require.NoError(t, err)

		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", itinerary.ID.String())
		assert.Equal(t, planClock, itinerary.CreatedAt)
		require.NotEmpty(t, itinerary.Stops)
		assert.Equal(t, models.StopStart, itinerary.Stops[0].Type)

		names := map[string]bool{}
		for _, st := range itinerary.Stops {
			names[st.Name] = true
		}
		assert.True(t, names["Cafe Medina"])
		assert.True(t, names["Salt Tasting Room"])
		assert.False(t, names["Stanley Park"], "off-theme POI leaked into the plan")
		assert.False(t, names["Sparse Diner"], "unpopular POI leaked into the plan")
	})

	t.Run("it rejects invalid requests before planning", func(t *testing.T) {
		bad := req
		bad.Days = 0
		_, err := testPlanner(t, base).Plan(ctx, bad)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("it enforces the service region", func(t *testing.T) {
		planner := testPlanner(t, base)
		planner.region = &models.BoundingBox{MinLat: 49, MaxLat: 50, MinLon: -124, MaxLon: -122}
		_, err := planner.Plan(ctx, req)
		assert.ErrorIs(t, err, models.ErrOutOfRegion)
	})

	t.Run("it degrades gracefully on an undersized pool", func(t *testing.T) {
		small := req
		small.POICount = 50
		itinerary, err := testPlanner(t, base).Plan(ctx, small)
		require.NoError(t, err)
		// Start plus the two qualifying POIs.
		assert.NotEmpty(t, itinerary.Stops)
		assert.LessOrEqual(t, len(itinerary.Stops), 4)
	})

	t.Run("it plans without a road network", func(t *testing.T) {
		itinerary, err := testPlanner(t, base).Plan(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, itinerary.Route)
		assert.Zero(t, itinerary.RouteGaps)
	})
}
