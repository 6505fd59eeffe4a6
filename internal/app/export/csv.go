package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

const timeLayout = "2006-01-02 15:04"

// WriteCSV renders the itinerary as a tabular export ordered by day then
// arrival time.
func WriteCSV(w io.Writer, itinerary *models.Itinerary) error {
	stops := sortedStops(itinerary)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "name", "type", "arrival", "departure"}); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, st := range stops {
		record := []string{
			fmt.Sprintf("%d", st.Day),
			st.Name,
			string(st.Type),
			st.Arrival.Format(timeLayout),
			st.Departure.Format(timeLayout),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing csv record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

func sortedStops(itinerary *models.Itinerary) []models.ScheduleStop {
	stops := make([]models.ScheduleStop, len(itinerary.Stops))
	copy(stops, itinerary.Stops)
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].Day != stops[j].Day {
			return stops[i].Day < stops[j].Day
		}
		return stops[i].Arrival.Before(stops[j].Arrival)
	})
	return stops
}
