package tours

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geocode"
	"github.com/FACorreiaa/go-wayfarer/internal/app/export"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-wayfarer/internal/app/services"
	"github.com/FACorreiaa/go-wayfarer/internal/pkg/cache"
)

// StartPointFinder proposes tour starting points near a coordinate.
type StartPointFinder interface {
	StartPoints(ctx context.Context, origin models.Coordinate, count int) []models.PointOfInterest
}

// TourHandlers exposes the planning pipeline over HTTP.
type TourHandlers struct {
	planner  services.Planner
	geocoder geocode.Service
	finder   StartPointFinder
	caches   *cache.CacheManager
	logger   *zap.Logger
}

func NewTourHandlers(planner services.Planner, geocoder geocode.Service, finder StartPointFinder, caches *cache.CacheManager, logger *zap.Logger) *TourHandlers {
	if caches == nil {
		caches = cache.Cache
	}
	return &TourHandlers{
		planner:  planner,
		geocoder: geocoder,
		finder:   finder,
		caches:   caches,
		logger:   logger,
	}
}

// planRequest is the intake payload. The start is either a coordinate pair
// or a free-text address resolved through the geocoding collaborator.
type planRequest struct {
	Days         int      `json:"days"`
	Theme        string   `json:"theme"`
	POICount     int      `json:"poi_count"`
	StartLat     *float64 `json:"start_lat"`
	StartLon     *float64 `json:"start_lon"`
	StartAddress string   `json:"start_address"`
	Mode         string   `json:"mode"`
	WantsRental  bool     `json:"wants_rental"`
	WantsLodging bool     `json:"wants_lodging"`
}

// HandleCreateTour plans an itinerary from the request payload. Validation
// failures come back as 400s with a descriptive message so the client can
// correct and resubmit.
func (h *TourHandlers) HandleCreateTour(c *gin.Context) {
	var payload planRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	req, err := h.buildRequest(c, payload)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrUnavailable) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	started := time.Now()
	itinerary, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("plan rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.caches.Itineraries.Set(itinerary.ID.String(), itinerary)
	if metrics.Initialized() {
		m := metrics.Get()
		m.ToursPlannedTotal.Add(c.Request.Context(), 1)
		m.TourPlanDuration.Record(c.Request.Context(), time.Since(started).Seconds())
		m.ScheduleStopsTotal.Add(c.Request.Context(), int64(len(itinerary.Stops)))
		m.RoutingGapsTotal.Add(c.Request.Context(), int64(itinerary.RouteGaps))
	}

	c.JSON(http.StatusOK, itinerary)
}

func (h *TourHandlers) buildRequest(c *gin.Context, payload planRequest) (models.TourRequest, error) {
	req := models.TourRequest{
		Days:         payload.Days,
		Theme:        models.Theme(payload.Theme),
		POICount:     payload.POICount,
		Mode:         models.TransportMode(payload.Mode),
		WantsRental:  payload.WantsRental,
		WantsLodging: payload.WantsLodging,
	}

	switch {
	case payload.StartLat != nil && payload.StartLon != nil:
		req.Start = models.Coordinate{Lat: *payload.StartLat, Lon: *payload.StartLon}
	case payload.StartAddress != "":
		if h.geocoder == nil {
			return req, fmt.Errorf("%w: start_address given but geocoding is not configured", models.ErrValidation)
		}
		coord, err := h.geocoder.Geocode(c.Request.Context(), payload.StartAddress)
		if err != nil {
			return req, err
		}
		req.Start = coord
	default:
		return req, fmt.Errorf("%w: either start_lat/start_lon or start_address is required", models.ErrValidation)
	}

	return req, nil
}

// HandleStartPoints suggests transit and housing POIs near the given
// coordinate as candidate tour starting points.
func (h *TourHandlers) HandleStartPoints(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}
	origin := models.Coordinate{Lat: lat, Lon: lon}
	if !origin.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("coordinate (%f, %f) out of range", lat, lon)})
		return
	}

	count := 5
	if raw := c.Query("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"origin":       origin,
		"start_points": h.finder.StartPoints(c.Request.Context(), origin, count),
	})
}

// HandleGetTour returns a previously planned itinerary.
func (h *TourHandlers) HandleGetTour(c *gin.Context) {
	if itinerary, ok := h.lookup(c); ok {
		c.JSON(http.StatusOK, itinerary)
	}
}

// HandleExportCSV streams the itinerary's tabular export.
func (h *TourHandlers) HandleExportCSV(c *gin.Context) {
	itinerary, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=tour-%s.csv", itinerary.ID))
	if err := export.WriteCSV(c.Writer, itinerary); err != nil {
		h.logger.Error("csv export failed", zap.String("id", itinerary.ID.String()), zap.Error(err))
	}
}

// HandleExportPDF streams the printable itinerary sheet.
func (h *TourHandlers) HandleExportPDF(c *gin.Context) {
	itinerary, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=tour-%s.pdf", itinerary.ID))
	if err := export.WritePDF(c.Writer, itinerary); err != nil {
		h.logger.Error("pdf export failed", zap.String("id", itinerary.ID.String()), zap.Error(err))
	}
}

// HandleMap renders the itinerary as an interactive map page.
func (h *TourHandlers) HandleMap(c *gin.Context) {
	itinerary, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteMap(c.Writer, itinerary); err != nil {
		h.logger.Error("map render failed", zap.String("id", itinerary.ID.String()), zap.Error(err))
	}
}

func (h *TourHandlers) lookup(c *gin.Context) (*models.Itinerary, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary id"})
		return nil, false
	}
	itinerary, found := h.caches.Itineraries.Get(id.String())
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found or expired"})
		return nil, false
	}
	return itinerary, true
}
