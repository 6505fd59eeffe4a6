package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is inside the WGS84 envelope.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// BoundingBox is an optional service-region constraint for start coordinates.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// PointOfInterest is a single catalog entry. Records are immutable once
// loaded; selection and scheduling work on local copies and never write back.
type PointOfInterest struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Coord    Coordinate        `json:"coord"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// DisplayName returns the POI name or a category-derived placeholder when
// the source record carries no name.
func (p PointOfInterest) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	if p.Category != "" {
		return "Unnamed " + strings.ReplaceAll(p.Category, "_", " ")
	}
	return "Unnamed place"
}

// WikidataID returns the Wikidata identifier from the POI tags, preferring
// the venue's own id over the brand's.
func (p PointOfInterest) WikidataID() string {
	if id := p.Tags["wikidata"]; id != "" {
		return id
	}
	return p.Tags["brand:wikidata"]
}

// Theme is a named grouping of POI categories used to filter the catalog.
type Theme string

const (
	ThemeFood          Theme = "food"
	ThemeNature        Theme = "nature"
	ThemeHistory       Theme = "history"
	ThemeScience       Theme = "science"
	ThemeArt           Theme = "art"
	ThemeEntertainment Theme = "entertainment"
	ThemeBarCrawl      Theme = "bar-crawl"
	ThemeRandom        Theme = "random"
)

// Themes lists every theme the request intake accepts.
var Themes = []Theme{
	ThemeFood, ThemeNature, ThemeHistory, ThemeScience,
	ThemeArt, ThemeEntertainment, ThemeBarCrawl, ThemeRandom,
}

func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Themes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown theme %q", ErrValidation, s)
}

// TransportMode is how the visitor moves between stops.
type TransportMode string

const (
	ModeWalk  TransportMode = "walk"
	ModeBike  TransportMode = "bike"
	ModeDrive TransportMode = "drive"
)

func ParseTransportMode(s string) (TransportMode, error) {
	m := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeWalk, ModeBike, ModeDrive:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown transport mode %q", ErrValidation, s)
}

// TourRequest is a fully validated planning request. Invalid requests are
// rejected at the intake boundary and never reach the scheduling core.
type TourRequest struct {
	Days         int           `json:"days"`
	Theme        Theme         `json:"theme"`
	POICount     int           `json:"poi_count"`
	Start        Coordinate    `json:"start"`
	Mode         TransportMode `json:"mode"`
	WantsRental  bool          `json:"wants_rental"`
	WantsLodging bool          `json:"wants_lodging"`
}

// Validate checks the request against the field invariants and, when a
// service region is configured, the start coordinate against it.
func (r TourRequest) Validate(region *BoundingBox) error {
	if r.Days < 1 {
		return fmt.Errorf("%w: tour length must be at least 1 day, got %d", ErrValidation, r.Days)
	}
	if r.POICount < 1 {
		return fmt.Errorf("%w: poi count must be at least 1, got %d", ErrValidation, r.POICount)
	}
	if _, err := ParseTheme(string(r.Theme)); err != nil {
		return err
	}
	if _, err := ParseTransportMode(string(r.Mode)); err != nil {
		return err
	}
	if !r.Start.Valid() {
		return fmt.Errorf("%w: start coordinate (%f, %f) out of range", ErrValidation, r.Start.Lat, r.Start.Lon)
	}
	if region != nil && !region.Contains(r.Start) {
		return fmt.Errorf("%w: start coordinate (%f, %f) outside service region", ErrOutOfRegion, r.Start.Lat, r.Start.Lon)
	}
	if r.WantsRental && r.Mode != ModeWalk {
		return fmt.Errorf("%w: rental only available for walking tours", ErrValidation)
	}
	return nil
}

// StopType classifies a schedule entry.
type StopType string

const (
	StopStart      StopType = "start"
	StopAmenity    StopType = "amenity"
	StopRestaurant StopType = "restaurant"
	StopHotel      StopType = "hotel"
	StopRental     StopType = "rental"
)

// ScheduleStop is one timestamped entry of an itinerary.
type ScheduleStop struct {
	Day           int        `json:"day"`
	Name          string     `json:"name"`
	Type          StopType   `json:"type"`
	Category      string     `json:"category,omitempty"`
	Coord         Coordinate `json:"coord"`
	Arrival       time.Time  `json:"arrival"`
	Departure     time.Time  `json:"departure"`
	TravelMinutes float64    `json:"travel_minutes"`
}

// Itinerary is the scheduling result: a day-partitioned, timestamped stop
// sequence plus the stitched road-network route. Immutable once built.
type Itinerary struct {
	ID        uuid.UUID      `json:"id"`
	Request   TourRequest    `json:"request"`
	Stops     []ScheduleStop `json:"stops"`
	Route     []Coordinate   `json:"route,omitempty"`
	RouteGaps int            `json:"route_gaps"`
	CreatedAt time.Time      `json:"created_at"`
}
