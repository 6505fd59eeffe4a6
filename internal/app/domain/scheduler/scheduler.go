package scheduler

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geo"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Speeds per transport mode, km/h.
var modeSpeedKmh = map[models.TransportMode]float64{
	models.ModeWalk:  5,
	models.ModeBike:  15,
	models.ModeDrive: 50,
}

// Visit durations per stop type, minutes.
var stopDurations = map[models.StopType]time.Duration{
	models.StopHotel:      720 * time.Minute,
	models.StopRestaurant: 60 * time.Minute,
	models.StopRental:     20 * time.Minute,
}

const defaultStopDuration = 60 * time.Minute

var hotelCategories = map[string]bool{
	"hotel": true, "hostel": true, "motel": true,
	"guest_house": true, "apartment_hotel": true, "love_hotel": true,
}

var rentalCategories = map[string]bool{
	"car_rental": true, "bicycle_rental": true,
	"motorcycle_rental": true, "car_sharing": true,
}

var restaurantCategories = map[string]bool{
	"restaurant": true, "cafe": true, "pub": true, "bar": true,
	"bistro": true, "food_court": true, "fast_food": true, "biergarten": true,
}

// Pools are the auxiliary POI catalogs the scheduler may draw from. They
// are borrowed read-only; consumption is tracked per run in a local index
// set, never by mutating the catalogs themselves.
type Pools struct {
	Restaurants []models.PointOfInterest
	Lodging     []models.PointOfInterest
	Rentals     []models.PointOfInterest
}

// Scheduler turns an ordered visit list into a day-partitioned,
// timestamped itinerary. One Build call is a single-threaded batch
// computation with no shared mutable state, so independent requests can
// run concurrently against the same catalogs.
type Scheduler struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger}
}

// Build consumes the ordered visit list and produces the schedule. day1 is
// any instant on the notional first day; the schedule starts at 09:00 of
// that date.
func (s *Scheduler) Build(req models.TourRequest, visits []models.PointOfInterest, pools Pools, day1 time.Time) []models.ScheduleStop {
	dc := NewDayContext(1, day1)
	cur := dc.Start
	pos := req.Start

	stops := []models.ScheduleStop{{
		Day:       dc.Day,
		Name:      "Start",
		Type:      models.StopStart,
		Coord:     req.Start,
		Arrival:   dc.Start,
		Departure: dc.Start,
	}}

	// Walking tours that asked for a rental get the nearest rental point
	// as their first visit.
	if req.Mode == models.ModeWalk && req.WantsRental && len(pools.Rentals) > 0 {
		if i := geo.Nearest(req.Start, pools.Rentals); i >= 0 {
			visits = append([]models.PointOfInterest{pools.Rentals[i]}, visits...)
		}
	}

	lodgingUsed := make(map[int]bool)

	for _, next := range visits {
		travel := travelMinutes(pos, next.Coord, req.Mode)
		arrival := cur.Add(travel)

		// Day-end guard: no room left today, close the day with a hotel
		// and retry this point tomorrow morning.
		if arrival.After(dc.End) || dc.End.Sub(arrival) < minDaySlack {
			var done bool
			stops, dc, cur, pos, done = s.closeDay(stops, req, dc, cur, pos, pools.Lodging, lodgingUsed)
			if done {
				break
			}
			travel = travelMinutes(pos, next.Coord, req.Mode)
			arrival = cur.Add(travel)
		}

		stopType := resolveStopType(next)
		duration := durationFor(stopType)

		// Meal guard: coerce this stop into a restaurant when arrival hits
		// an open meal window and the day still has meal budget. The stop
		// is overridden in place, no detour is inserted.
		if len(pools.Restaurants) > 0 && dc.RestaurantStops < maxRestaurantStopsPerDay {
			if m := dc.pendingMeal(arrival); m >= 0 {
				stopType = models.StopRestaurant
				duration = durationFor(stopType)
				dc.Meals[m].Taken = true
				dc.RestaurantStops++
			}
		}

		departure := arrival.Add(duration)

		// Overflow guard: the visit itself would run past the day's end.
		// Close the day instead and drop the point for this transition.
		if departure.After(dc.End) && stopType != models.StopHotel {
			s.logger.Debug("stop dropped by end-of-day overflow",
				zap.String("name", next.DisplayName()),
				zap.Int("day", dc.Day))
			var done bool
			stops, dc, cur, pos, done = s.closeDay(stops, req, dc, cur, pos, pools.Lodging, lodgingUsed)
			if done {
				break
			}
			continue
		}

		stops = append(stops, models.ScheduleStop{
			Day:           dc.Day,
			Name:          next.DisplayName(),
			Type:          stopType,
			Category:      categoryOf(next),
			Coord:         next.Coord,
			Arrival:       arrival,
			Departure:     departure,
			TravelMinutes: travel.Minutes(),
		})
		cur = departure
		pos = next.Coord
	}

	return truncate(stops, req.Days)
}

// closeDay inserts the day's closing hotel stop, advances the day context
// and repositions the clock at the next morning. The nearest unconsumed
// lodging point to the current position wins; an empty pool degrades to a
// synthesized hotel stop at the current position so no day is left open.
// done is true when the tour length is exhausted.
func (s *Scheduler) closeDay(
	stops []models.ScheduleStop,
	req models.TourRequest,
	dc DayContext,
	cur time.Time,
	pos models.Coordinate,
	lodging []models.PointOfInterest,
	used map[int]bool,
) ([]models.ScheduleStop, DayContext, time.Time, models.Coordinate, bool) {
	stop := models.ScheduleStop{
		Day:      dc.Day,
		Name:     "Overnight stay",
		Type:     models.StopHotel,
		Category: "hotel",
		Coord:    pos,
		Arrival:  cur,
	}

	if i := nearestUnused(pos, lodging, used); i >= 0 {
		used[i] = true
		hotel := lodging[i]
		travel := travelMinutes(pos, hotel.Coord, req.Mode)
		stop.Name = hotel.DisplayName()
		stop.Coord = hotel.Coord
		stop.Arrival = cur.Add(travel)
		stop.TravelMinutes = travel.Minutes()
	}
	stop.Departure = stop.Arrival.Add(durationFor(models.StopHotel))

	// A mid-tour day always gets its closing stop; once the tour is over
	// the hotel only appears when lodging was requested.
	if req.WantsLodging || dc.Day < req.Days {
		stops = append(stops, stop)
	}

	next := AdvanceDay(dc)
	return stops, next, next.Start, stop.Coord, next.Day > req.Days
}

// nearestUnused returns the index of the closest pool entry not yet
// consumed this run, or -1. Ties break toward the earlier entry.
func nearestUnused(origin models.Coordinate, pool []models.PointOfInterest, used map[int]bool) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range pool {
		if used[i] {
			continue
		}
		if d := geo.Distance(origin, p.Coord); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// travelMinutes converts the great-circle distance into travel time for
// the mode, floored at one minute so co-located stops still consume time.
func travelMinutes(from, to models.Coordinate, mode models.TransportMode) time.Duration {
	speed, ok := modeSpeedKmh[mode]
	if !ok {
		speed = modeSpeedKmh[models.ModeWalk]
	}
	minutes := geo.Distance(from, to) / speed * 60
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes * float64(time.Minute))
}

// resolveStopType classifies a POI by its amenity tag, falling back to the
// raw category, falling back to a generic amenity stop.
func resolveStopType(p models.PointOfInterest) models.StopType {
	category := categoryOf(p)
	switch {
	case hotelCategories[category]:
		return models.StopHotel
	case rentalCategories[category]:
		return models.StopRental
	case restaurantCategories[category]:
		return models.StopRestaurant
	default:
		return models.StopAmenity
	}
}

func categoryOf(p models.PointOfInterest) string {
	if c, ok := p.Tags["amenity"]; ok && c != "" {
		return c
	}
	if p.Category != "" {
		return p.Category
	}
	return "amenity"
}

func durationFor(t models.StopType) time.Duration {
	if d, ok := stopDurations[t]; ok {
		return d
	}
	return defaultStopDuration
}

// truncate drops stops scheduled past the requested tour length. The loop
// already stops rolling days over; this is the backstop for the day-index
// invariant.
func truncate(stops []models.ScheduleStop, days int) []models.ScheduleStop {
	out := stops[:0:0]
	for _, st := range stops {
		if st.Day <= days {
			out = append(out, st)
		}
	}
	return out
}
