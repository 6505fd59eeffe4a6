package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

var day1 = time.Date(2024, 11, 4, 10, 30, 0, 0, time.UTC)

func walkRequest(days, count int) models.TourRequest {
	return models.TourRequest{
		Days:     days,
		Theme:    models.ThemeFood,
		POICount: count,
		Start:    models.Coordinate{Lat: 0, Lon: 0},
		Mode:     models.ModeWalk,
	}
}

// colocated builds n POIs at the start coordinate so each hop costs the
// one-minute travel floor and the timeline stays exact.
func colocated(n int) []models.PointOfInterest {
	pois := make([]models.PointOfInterest, n)
	for i := range pois {
		pois[i] = models.PointOfInterest{
			Name:     "Museum " + string(rune('A'+i)),
			Category: "museum",
			Coord:    models.Coordinate{Lat: 0, Lon: 0},
		}
	}
	return pois
}

func at(hour, min int) time.Time {
	return time.Date(2024, 11, 4, hour, min, 0, 0, time.UTC)
}

func TestBuildBasicDay(t *testing.T) {
	s := New(nil)
	req := walkRequest(1, 3)
	stops := s.Build(req, colocated(3), Pools{}, day1)

	require.Len(t, stops, 4)

	t.Run("it opens with a start stop at nine", func(t *testing.T) {
		assert.Equal(t, models.StopStart, stops[0].Type)
		assert.Equal(t, 1, stops[0].Day)
		assert.Equal(t, at(9, 0), stops[0].Arrival)
		assert.Equal(t, stops[0].Arrival, stops[0].Departure)
	})

	t.Run("it schedules visits back to back with the travel floor", func(t *testing.T) {
		assert.Equal(t, at(9, 1), stops[1].Arrival)
		assert.Equal(t, at(10, 1), stops[1].Departure)
		assert.Equal(t, at(10, 2), stops[2].Arrival)
		assert.Equal(t, at(11, 2), stops[2].Departure)
	})

	t.Run("it keeps departures at or after arrivals", func(t *testing.T) {
		for _, st := range stops {
			assert.False(t, st.Departure.Before(st.Arrival), "stop %s", st.Name)
		}
	})

	t.Run("it records the preceding travel time", func(t *testing.T) {
		assert.InDelta(t, 1.0, stops[1].TravelMinutes, 1e-9)
	})
}

func TestBuildMealCoercion(t *testing.T) {
	s := New(nil)
	restaurants := []models.PointOfInterest{{Name: "Any Diner", Category: "restaurant"}}

	t.Run("it coerces a stop arriving inside a meal window", func(t *testing.T) {
		req := walkRequest(1, 1)
		stops := s.Build(req, colocated(1), Pools{Restaurants: restaurants}, day1)

		require.Len(t, stops, 2)
		// Arrival at 09:01 sits inside the breakfast window.
		assert.Equal(t, models.StopRestaurant, stops[1].Type)
		assert.Equal(t, at(9, 1), stops[1].Arrival)
		assert.Equal(t, at(10, 1), stops[1].Departure)
	})

	t.Run("it leaves stops alone when no restaurants exist", func(t *testing.T) {
		req := walkRequest(1, 1)
		stops := s.Build(req, colocated(1), Pools{}, day1)

		require.Len(t, stops, 2)
		assert.Equal(t, models.StopAmenity, stops[1].Type)
	})

	t.Run("it coerces at most one stop per meal window", func(t *testing.T) {
		req := walkRequest(1, 10)
		stops := s.Build(req, colocated(10), Pools{Restaurants: restaurants}, day1)

		coerced := 0
		for _, st := range stops {
			if st.Type == models.StopRestaurant {
				coerced++
			}
		}
		// Breakfast at 09:01, lunch at 13:05, dinner at 18:10; everything
		// else stays an amenity visit.
		assert.Equal(t, 3, coerced)
	})

	t.Run("it hits the lunch window after morning visits", func(t *testing.T) {
		req := walkRequest(1, 10)
		stops := s.Build(req, colocated(10), Pools{Restaurants: restaurants}, day1)

		var lunch *models.ScheduleStop
		for i := range stops {
			if stops[i].Arrival.Equal(at(13, 5)) {
				lunch = &stops[i]
			}
		}
		require.NotNil(t, lunch, "expected a stop arriving at 13:05")
		assert.Equal(t, models.StopRestaurant, lunch.Type)
	})
}

func TestBuildDayRollover(t *testing.T) {
	s := New(nil)

	// v1 sits at the start; v2 is a ~56 km walk away, far past the end of
	// day one. A hotel near v2 lets day two open within walking range.
	v1 := models.PointOfInterest{Name: "Near Gallery", Category: "gallery", Coord: models.Coordinate{Lat: 0, Lon: 0}}
	v2 := models.PointOfInterest{Name: "Far Lighthouse", Category: "lighthouse", Coord: models.Coordinate{Lat: 0, Lon: 0.5}}
	hotel := models.PointOfInterest{Name: "Harbour Hotel", Category: "hotel", Coord: models.Coordinate{Lat: 0, Lon: 0.499}}

	req := walkRequest(2, 2)
	stops := s.Build(req, []models.PointOfInterest{v1, v2}, Pools{Lodging: []models.PointOfInterest{hotel}}, day1)

	t.Run("it closes the overrun day with the nearest hotel", func(t *testing.T) {
		require.Len(t, stops, 4)
		assert.Equal(t, models.StopHotel, stops[2].Type)
		assert.Equal(t, "Harbour Hotel", stops[2].Name)
		assert.Equal(t, 1, stops[2].Day)
	})

	t.Run("it retries the dropped point the next morning", func(t *testing.T) {
		last := stops[3]
		assert.Equal(t, "Far Lighthouse", last.Name)
		assert.Equal(t, 2, last.Day)
		// Next morning starts at 09:00 plus a short hop from the hotel.
		dayTwoNine := at(9, 0).Add(24 * time.Hour)
		assert.True(t, last.Arrival.After(dayTwoNine))
		assert.True(t, last.Arrival.Before(dayTwoNine.Add(5*time.Minute)))
	})

	t.Run("it keeps day indexes non-decreasing", func(t *testing.T) {
		for i := 1; i < len(stops); i++ {
			assert.GreaterOrEqual(t, stops[i].Day, stops[i-1].Day)
		}
	})

	t.Run("it never schedules past the tour length", func(t *testing.T) {
		for _, st := range stops {
			assert.LessOrEqual(t, st.Day, req.Days)
		}
	})
}

func TestBuildSynthesizedHotel(t *testing.T) {
	s := New(nil)

	far := models.PointOfInterest{Name: "Remote Point", Category: "viewpoint", Coord: models.Coordinate{Lat: 0, Lon: 0.5}}
	req := walkRequest(2, 1)
	stops := s.Build(req, []models.PointOfInterest{far}, Pools{}, day1)

	t.Run("it synthesizes an overnight stop when lodging is empty", func(t *testing.T) {
		require.GreaterOrEqual(t, len(stops), 2)
		hotel := stops[1]
		assert.Equal(t, models.StopHotel, hotel.Type)
		assert.Equal(t, "Overnight stay", hotel.Name)
		assert.Equal(t, req.Start, hotel.Coord)
	})
}

func TestBuildLastDayHotel(t *testing.T) {
	s := New(nil)
	far := []models.PointOfInterest{
		{Name: "Too Far", Category: "viewpoint", Coord: models.Coordinate{Lat: 0, Lon: 1.5}},
	}

	t.Run("it omits the final hotel when lodging was not requested", func(t *testing.T) {
		req := walkRequest(1, 1)
		stops := s.Build(req, far, Pools{}, day1)
		for _, st := range stops {
			assert.NotEqual(t, models.StopHotel, st.Type)
		}
	})

	t.Run("it records the final hotel when lodging was requested", func(t *testing.T) {
		req := walkRequest(1, 1)
		req.WantsLodging = true
		stops := s.Build(req, far, Pools{}, day1)
		require.NotEmpty(t, stops)
		assert.Equal(t, models.StopHotel, stops[len(stops)-1].Type)
	})
}

func TestBuildRentalPickup(t *testing.T) {
	s := New(nil)
	rental := models.PointOfInterest{Name: "Spokes Bicycle Rentals", Category: "bicycle_rental"}

	t.Run("it prepends the nearest rental for walking tours", func(t *testing.T) {
		req := walkRequest(1, 1)
		req.WantsRental = true
		stops := s.Build(req, colocated(1), Pools{Rentals: []models.PointOfInterest{rental}}, day1)

		require.Len(t, stops, 3)
		assert.Equal(t, models.StopRental, stops[1].Type)
		assert.Equal(t, "Spokes Bicycle Rentals", stops[1].Name)
		// Rental pickups are quick.
		assert.Equal(t, 20*time.Minute, stops[1].Departure.Sub(stops[1].Arrival))
	})

	t.Run("it skips the pickup when no rentals exist", func(t *testing.T) {
		req := walkRequest(1, 1)
		req.WantsRental = true
		stops := s.Build(req, colocated(1), Pools{}, day1)
		for _, st := range stops {
			assert.NotEqual(t, models.StopRental, st.Type)
		}
	})
}

func TestDayContext(t *testing.T) {
	dc := NewDayContext(1, day1)

	t.Run("it frames the working day", func(t *testing.T) {
		assert.Equal(t, at(9, 0), dc.Start)
		assert.Equal(t, at(21, 0), dc.End)
	})

	t.Run("it targets the three meals", func(t *testing.T) {
		assert.Equal(t, at(9, 0), dc.Meals[0].Target)
		assert.Equal(t, at(13, 0), dc.Meals[1].Target)
		assert.Equal(t, at(18, 0), dc.Meals[2].Target)
	})

	t.Run("it rolls over without touching the receiver", func(t *testing.T) {
		dc.Meals[0].Taken = true
		dc.RestaurantStops = 2

		next := AdvanceDay(dc)
		assert.Equal(t, 2, next.Day)
		assert.Equal(t, dc.Start.Add(24*time.Hour), next.Start)
		assert.False(t, next.Meals[0].Taken)
		assert.Zero(t, next.RestaurantStops)

		assert.True(t, dc.Meals[0].Taken)
		assert.Equal(t, 1, dc.Day)
	})

	t.Run("it matches arrivals to open meal windows", func(t *testing.T) {
		fresh := NewDayContext(1, day1)
		assert.Equal(t, 0, fresh.pendingMeal(at(9, 20)))
		assert.Equal(t, 1, fresh.pendingMeal(at(13, 29)))
		assert.Equal(t, 2, fresh.pendingMeal(at(17, 31)))
		assert.Equal(t, -1, fresh.pendingMeal(at(11, 0)))

		fresh.Meals[1].Taken = true
		assert.Equal(t, -1, fresh.pendingMeal(at(13, 0)))
	})
}
