package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateValid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 49.28, Lon: -123.12}.Valid())
	assert.True(t, Coordinate{Lat: -90, Lon: 180}.Valid())
	assert.False(t, Coordinate{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lon: -181}.Valid())
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{MinLat: 49, MaxLat: 50, MinLon: -124, MaxLon: -122}
	assert.True(t, box.Contains(Coordinate{Lat: 49.5, Lon: -123}))
	assert.True(t, box.Contains(Coordinate{Lat: 49, Lon: -124}))
	assert.False(t, box.Contains(Coordinate{Lat: 48.9, Lon: -123}))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Cafe Medina", PointOfInterest{Name: "Cafe Medina"}.DisplayName())
	assert.Equal(t, "Unnamed fast food", PointOfInterest{Category: "fast_food"}.DisplayName())
	assert.Equal(t, "Unnamed place", PointOfInterest{}.DisplayName())
	assert.Equal(t, "Unnamed cafe", PointOfInterest{Name: "   ", Category: "cafe"}.DisplayName())
}

func TestWikidataID(t *testing.T) {
	p := PointOfInterest{Tags: map[string]string{"wikidata": "Q123", "brand:wikidata": "Q999"}}
	assert.Equal(t, "Q123", p.WikidataID())

	brandOnly := PointOfInterest{Tags: map[string]string{"brand:wikidata": "Q999"}}
	assert.Equal(t, "Q999", brandOnly.WikidataID())

	assert.Empty(t, PointOfInterest{}.WikidataID())
}

func TestParseTheme(t *testing.T) {
	got, err := ParseTheme("  Food ")
	assert.NoError(t, err)
	assert.Equal(t, ThemeFood, got)

	_, err = ParseTheme("spelunking")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseTransportMode(t *testing.T) {
	got, err := ParseTransportMode("BIKE")
	assert.NoError(t, err)
	assert.Equal(t, ModeBike, got)

	_, err = ParseTransportMode("teleport")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTourRequestValidate(t *testing.T) {
	valid := TourRequest{
		Days:     2,
		Theme:    ThemeNature,
		POICount: 5,
		Start:    Coordinate{Lat: 49.28, Lon: -123.12},
		Mode:     ModeWalk,
	}

	t.Run("it accepts a well-formed request", func(t *testing.T) {
		assert.NoError(t, valid.Validate(nil))
	})

	tests := []struct {
		name    string
		mutate  func(*TourRequest)
		wantErr error
	}{
		{"zero days", func(r *TourRequest) { r.Days = 0 }, ErrValidation},
		{"zero poi count", func(r *TourRequest) { r.POICount = 0 }, ErrValidation},
		{"unknown theme", func(r *TourRequest) { r.Theme = "spelunking" }, ErrValidation},
		{"unknown mode", func(r *TourRequest) { r.Mode = "teleport" }, ErrValidation},
		{"start out of range", func(r *TourRequest) { r.Start.Lat = 95 }, ErrValidation},
		{"rental on a driving tour", func(r *TourRequest) { r.Mode = ModeDrive; r.WantsRental = true }, ErrValidation},
	}
	for _, tc := range tests {
		t.Run("it rejects "+tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			assert.ErrorIs(t, req.Validate(nil), tc.wantErr)
		})
	}

	t.Run("it enforces the service region when configured", func(t *testing.T) {
		region := &BoundingBox{MinLat: 49, MaxLat: 50, MinLon: -124, MaxLon: -122}
		assert.NoError(t, valid.Validate(region))

		outside := valid
		outside.Start = Coordinate{Lat: 40.7, Lon: -74.0}
		assert.ErrorIs(t, outside.Validate(region), ErrOutOfRegion)
	})
}
