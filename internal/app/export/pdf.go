package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// WritePDF renders a printable itinerary sheet, one section per day.
func WritePDF(w io.Writer, itinerary *models.Itinerary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("%d-day %s tour", itinerary.Request.Days, itinerary.Request.Theme))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Itinerary %s, planned %s", itinerary.ID, itinerary.CreatedAt.Format(timeLayout)))
	pdf.Ln(12)

	day := 0
	for _, st := range sortedStops(itinerary) {
		if st.Day != day {
			day = st.Day
			pdf.SetFont("Arial", "B", 13)
			pdf.Cell(0, 9, fmt.Sprintf("Day %d", day))
			pdf.Ln(10)
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, st.Name)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		line := fmt.Sprintf("%s  |  %s - %s", st.Type,
			st.Arrival.Format("15:04"), st.Departure.Format("15:04"))
		if st.TravelMinutes > 0 {
			line += fmt.Sprintf("  |  %.0f min travel", st.TravelMinutes)
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(8)
	}

	if itinerary.RouteGaps > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, fmt.Sprintf("Note: %d route segment(s) could not be resolved on the road network.", itinerary.RouteGaps))
	}

	return errors.Wrap(pdf.Output(w), "writing itinerary pdf")
}
