package geo

import (
	"math"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between two coordinates in
// kilometers using the haversine formula. Pure and symmetric.
func Distance(a, b models.Coordinate) float64 {
	lat1 := radians(a.Lat)
	lon1 := radians(a.Lon)
	lat2 := radians(b.Lat)
	lon2 := radians(b.Lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(h))

	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Nearest returns the index of the pool entry closest to origin, with ties
// broken by pool order so selection stays deterministic. Returns -1 for an
// empty pool.
func Nearest(origin models.Coordinate, pool []models.PointOfInterest) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range pool {
		if d := Distance(origin, p.Coord); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// CenterPoint averages the valid coordinates, falling back to the given
// coordinate when none are valid. Used to center rendered maps.
func CenterPoint(coords []models.Coordinate, fallback models.Coordinate) models.Coordinate {
	var latSum, lonSum float64
	n := 0
	for _, c := range coords {
		if !c.Valid() {
			continue
		}
		latSum += c.Lat
		lonSum += c.Lon
		n++
	}
	if n == 0 {
		return fallback
	}
	return models.Coordinate{Lat: latSum / float64(n), Lon: lonSum / float64(n)}
}

// Bounds returns the bounding box enclosing the valid coordinates.
func Bounds(coords []models.Coordinate) (models.BoundingBox, bool) {
	box := models.BoundingBox{
		MinLat: math.MaxFloat64,
		MaxLat: -math.MaxFloat64,
		MinLon: math.MaxFloat64,
		MaxLon: -math.MaxFloat64,
	}
	any := false
	for _, c := range coords {
		if !c.Valid() {
			continue
		}
		any = true
		box.MinLat = math.Min(box.MinLat, c.Lat)
		box.MaxLat = math.Max(box.MaxLat, c.Lat)
		box.MinLon = math.Min(box.MinLon, c.Lon)
		box.MaxLon = math.Max(box.MaxLon, c.Lon)
	}
	return box, any
}
