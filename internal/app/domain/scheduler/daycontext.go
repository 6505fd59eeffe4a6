package scheduler

import "time"

const (
	dayStartHour = 9
	dayEndHour   = 21

	// mealWindow is how far arrival may drift from a meal target and still
	// trigger a restaurant coercion.
	mealWindow = 30 * time.Minute

	// minDaySlack is the least usable time a day must have left before the
	// scheduler gives up on it and closes it with a hotel stop.
	minDaySlack = 15 * time.Minute

	maxRestaurantStopsPerDay = 3
)

var mealHours = [3]int{9, 13, 18}

// Meal is one per-day meal target with its taken flag.
type Meal struct {
	Name   string
	Target time.Time
	Taken  bool
}

// DayContext carries every piece of per-day scheduling state: the day
// index, the day's working window, meal targets and their flags, and the
// restaurant-insertion counter. Rollover happens only through AdvanceDay so
// resets stay in one place.
type DayContext struct {
	Day             int
	Start           time.Time
	End             time.Time
	Meals           [3]Meal
	RestaurantStops int
}

// NewDayContext builds the context for a given day index on the notional
// date, with the fixed 09:00–21:00 window and meal targets.
func NewDayContext(day int, date time.Time) DayContext {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dc := DayContext{
		Day:   day,
		Start: midnight.Add(dayStartHour * time.Hour),
		End:   midnight.Add(dayEndHour * time.Hour),
	}
	names := [3]string{"breakfast", "lunch", "dinner"}
	for i, h := range mealHours {
		dc.Meals[i] = Meal{Name: names[i], Target: midnight.Add(time.Duration(h) * time.Hour)}
	}
	return dc
}

// AdvanceDay returns the context for the next calendar day: day index
// incremented, window and meal targets shifted by 24h, meal flags and the
// restaurant counter reset. Pure transition, the receiver is left as is.
func AdvanceDay(dc DayContext) DayContext {
	next := NewDayContext(dc.Day+1, dc.Start.Add(24*time.Hour))
	return next
}

// pendingMeal returns the index of an untaken meal whose target is within
// the meal window of arrival, or -1.
func (dc DayContext) pendingMeal(arrival time.Time) int {
	for i, m := range dc.Meals {
		if m.Taken {
			continue
		}
		diff := arrival.Sub(m.Target)
		if diff < 0 {
			diff = -diff
		}
		if diff <= mealWindow {
			return i
		}
	}
	return -1
}
