package export

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geo"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

//go:embed map.html.tmpl
var mapTemplateSource string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateSource))

type mapMarker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Day   int     `json:"day"`
	Label string  `json:"label"`
}

type mapData struct {
	Center    models.Coordinate
	MarkersJS template.JS
	RouteJS   template.JS
	Gaps      int
}

// WriteMap renders a self-contained Leaflet HTML page: stop markers
// grouped by type plus the stitched route polyline. When the itinerary has
// no stitched route the polyline falls back to straight stop-to-stop lines.
func WriteMap(w io.Writer, itinerary *models.Itinerary) error {
	stops := sortedStops(itinerary)

	markers := make([]mapMarker, 0, len(stops))
	coords := make([]models.Coordinate, 0, len(stops))
	for _, st := range stops {
		markers = append(markers, mapMarker{
			Lat:   st.Coord.Lat,
			Lon:   st.Coord.Lon,
			Name:  st.Name,
			Type:  string(st.Type),
			Day:   st.Day,
			Label: st.Arrival.Format("Mon 15:04"),
		})
		coords = append(coords, st.Coord)
	}

	route := itinerary.Route
	if len(route) == 0 {
		route = coords
	}

	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return errors.Wrap(err, "marshaling map markers")
	}
	routePairs := make([][2]float64, 0, len(route))
	for _, c := range route {
		routePairs = append(routePairs, [2]float64{c.Lat, c.Lon})
	}
	routeJSON, err := json.Marshal(routePairs)
	if err != nil {
		return errors.Wrap(err, "marshaling route polyline")
	}

	center := geo.CenterPoint(coords, itinerary.Request.Start)
	data := mapData{
		Center:    center,
		MarkersJS: template.JS(markersJSON),
		RouteJS:   template.JS(routeJSON),
		Gaps:      itinerary.RouteGaps,
	}
	return errors.Wrap(mapTemplate.Execute(w, data), "rendering map template")
}
