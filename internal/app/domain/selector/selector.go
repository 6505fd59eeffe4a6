package selector

import (
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geo"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// SelectNearest orders up to count POIs by repeatedly walking to the
// nearest unvisited one, starting from start. Ties go to the earlier pool
// entry, which keeps the result deterministic for a given pool order. An
// undersized pool just yields a shorter list; that is a smaller itinerary,
// not an error.
//
// O(count * len(pool)), fine for the tens-to-hundreds sized pools the
// planner works with.
func SelectNearest(pool []models.PointOfInterest, start models.Coordinate, count int) []models.PointOfInterest {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	// Work on a copy so the caller's pool survives untouched.
	remaining := make([]models.PointOfInterest, len(pool))
	copy(remaining, pool)

	route := make([]models.PointOfInterest, 0, count)
	pos := start
	for len(route) < count && len(remaining) > 0 {
		i := geo.Nearest(pos, remaining)
		chosen := remaining[i]
		route = append(route, chosen)
		remaining = append(remaining[:i], remaining[i+1:]...)
		pos = chosen.Coord
	}
	return route
}
