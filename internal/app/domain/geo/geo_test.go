package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

func TestDistance(t *testing.T) {
	vancouver := models.Coordinate{Lat: 49.2827, Lon: -123.1207}
	burnaby := models.Coordinate{Lat: 49.2488, Lon: -122.9805}

	t.Run("it is zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(vancouver, vancouver))
	})

	t.Run("it is symmetric", func(t *testing.T) {
		assert.InDelta(t, Distance(vancouver, burnaby), Distance(burnaby, vancouver), 1e-12)
	})

	t.Run("it matches a known city pair", func(t *testing.T) {
		// Downtown Vancouver to Burnaby is roughly 11 km.
		d := Distance(vancouver, burnaby)
		assert.InDelta(t, 11.0, d, 0.5)
	})

	t.Run("it handles antipodal-ish spans without overflow", func(t *testing.T) {
		a := models.Coordinate{Lat: 0, Lon: 0}
		b := models.Coordinate{Lat: 0, Lon: 180}
		assert.InDelta(t, 20015.0, Distance(a, b), 5.0)
	})
}

func TestNearest(t *testing.T) {
	origin := models.Coordinate{Lat: 0, Lon: 0}

	t.Run("it returns -1 for an empty pool", func(t *testing.T) {
		assert.Equal(t, -1, Nearest(origin, nil))
	})

	t.Run("it picks the closest entry", func(t *testing.T) {
		pool := []models.PointOfInterest{
			{Name: "far", Coord: models.Coordinate{Lat: 0, Lon: 2}},
			{Name: "near", Coord: models.Coordinate{Lat: 0, Lon: 0.5}},
			{Name: "mid", Coord: models.Coordinate{Lat: 0, Lon: 1}},
		}
		assert.Equal(t, 1, Nearest(origin, pool))
	})

	t.Run("it breaks ties toward the earlier entry", func(t *testing.T) {
		pool := []models.PointOfInterest{
			{Name: "a", Coord: models.Coordinate{Lat: 0, Lon: 1}},
			{Name: "b", Coord: models.Coordinate{Lat: 0, Lon: 1}},
		}
		assert.Equal(t, 0, Nearest(origin, pool))
	})
}

func TestCenterPoint(t *testing.T) {
	t.Run("it averages valid coordinates", func(t *testing.T) {
		coords := []models.Coordinate{
			{Lat: 10, Lon: 20},
			{Lat: 20, Lon: 40},
		}
		center := CenterPoint(coords, models.Coordinate{})
		assert.InDelta(t, 15, center.Lat, 1e-9)
		assert.InDelta(t, 30, center.Lon, 1e-9)
	})

	t.Run("it falls back when nothing is valid", func(t *testing.T) {
		coords := []models.Coordinate{{Lat: 200, Lon: 0}}
		fallback := models.Coordinate{Lat: 49, Lon: -123}
		assert.Equal(t, fallback, CenterPoint(coords, fallback))
	})
}

func TestBounds(t *testing.T) {
	t.Run("it encloses the valid coordinates", func(t *testing.T) {
		coords := []models.Coordinate{
			{Lat: 49.1, Lon: -123.2},
			{Lat: 49.3, Lon: -122.9},
			{Lat: 49.2, Lon: -123.0},
		}
		box, ok := Bounds(coords)
		assert.True(t, ok)
		assert.Equal(t, 49.1, box.MinLat)
		assert.Equal(t, 49.3, box.MaxLat)
		assert.Equal(t, -123.2, box.MinLon)
		assert.Equal(t, -122.9, box.MaxLon)
	})

	t.Run("it reports no bounds for an empty slice", func(t *testing.T) {
		_, ok := Bounds(nil)
		assert.False(t, ok)
	})
}
