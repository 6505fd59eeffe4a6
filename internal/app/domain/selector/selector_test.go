package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

func poiAt(name string, lon float64) models.PointOfInterest {
	return models.PointOfInterest{Name: name, Coord: models.Coordinate{Lat: 0, Lon: lon}}
}

func TestSelectNearest(t *testing.T) {
	start := models.Coordinate{Lat: 0, Lon: 0}

	t.Run("it walks greedily to the nearest unvisited point", func(t *testing.T) {
		// From 0 the nearest is c (0.1); from c the nearest is a (0.3),
		// even though b was second-closest to the start.
		pool := []models.PointOfInterest{
			poiAt("a", 0.3),
			poiAt("b", -0.2),
			poiAt("c", 0.1),
		}
		got := SelectNearest(pool, start, 3)
		names := []string{got[0].Name, got[1].Name, got[2].Name}
		assert.Equal(t, []string{"c", "a", "b"}, names)
	})

	t.Run("it returns fewer points when the pool is undersized", func(t *testing.T) {
		pool := []models.PointOfInterest{poiAt("a", 0.1), poiAt("b", 0.2)}
		got := SelectNearest(pool, start, 5)
		assert.Len(t, got, 2)
	})

	t.Run("it returns nil for a non-positive count", func(t *testing.T) {
		pool := []models.PointOfInterest{poiAt("a", 0.1)}
		assert.Nil(t, SelectNearest(pool, start, 0))
		assert.Nil(t, SelectNearest(pool, start, -1))
	})

	t.Run("it returns nil for an empty pool", func(t *testing.T) {
		assert.Nil(t, SelectNearest(nil, start, 3))
	})

	t.Run("it leaves the caller's pool untouched", func(t *testing.T) {
		pool := []models.PointOfInterest{
			poiAt("a", 0.3),
			poiAt("b", 0.1),
			poiAt("c", 0.2),
		}
		_ = SelectNearest(pool, start, 2)
		assert.Equal(t, "a", pool[0].Name)
		assert.Equal(t, "b", pool[1].Name)
		assert.Equal(t, "c", pool[2].Name)
	})

	t.Run("it never selects the same point twice", func(t *testing.T) {
		pool := []models.PointOfInterest{
			poiAt("a", 0.1), poiAt("b", 0.1), poiAt("c", 0.1),
		}
		got := SelectNearest(pool, start, 3)
		seen := map[string]bool{}
		for _, p := range got {
			assert.False(t, seen[p.Name], "point %s selected twice", p.Name)
			seen[p.Name] = true
		}
	})
}
