package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/route"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/scheduler"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/selector"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/themes"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

var _ Planner = (*PlannerService)(nil)

// Planner defines the business logic contract for tour planning.
type Planner interface {
	Plan(ctx context.Context, req models.TourRequest) (*models.Itinerary, error)
}

// PlannerService runs the planning pipeline: theme filter, popularity
// filter, greedy selection, daily scheduling and route stitching. The
// pipeline is synchronous and shares no mutable state between requests, so
// independent requests may run concurrently.
type PlannerService struct {
	catalog     *CatalogService
	filter      *themes.Filter
	scheduler   *scheduler.Scheduler
	stitcher    *route.Stitcher
	region      *models.BoundingBox
	minTagCount int
	logger      *zap.Logger

	// now is injectable so tests get deterministic schedules.
	now func() time.Time
}

func NewPlannerService(
	catalog *CatalogService,
	filter *themes.Filter,
	sched *scheduler.Scheduler,
	stitcher *route.Stitcher,
	region *models.BoundingBox,
	minTagCount int,
	logger *zap.Logger,
) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		catalog:     catalog,
		filter:      filter,
		scheduler:   sched,
		stitcher:    stitcher,
		region:      region,
		minTagCount: minTagCount,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the planning clock. Test hook.
func (s *PlannerService) WithClock(now func() time.Time) *PlannerService {
	s.now = now
	return s
}

// Plan validates the request and produces an itinerary. Sparse data never
// fails a plan: an empty pool just yields a shorter schedule, per the
// degrade-gracefully policy.
func (s *PlannerService) Plan(ctx context.Context, req models.TourRequest) (*models.Itinerary, error) {
	tracer := otel.Tracer("wayfarer")
	ctx, span := tracer.Start(ctx, "PlannerService.Plan")
	defer span.End()

	span.SetAttributes(
		attribute.String("tour.theme", string(req.Theme)),
		attribute.String("tour.mode", string(req.Mode)),
		attribute.Int("tour.days", req.Days),
		attribute.Int("tour.poi_count", req.POICount),
	)

	if err := req.Validate(s.region); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	started := s.now()

	themed, err := s.filter.ByTheme(s.catalog.Base(), req.Theme)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	popular := s.filter.Popular(themed, s.minTagCount)
	visits := selector.SelectNearest(popular, req.Start, req.POICount)

	if len(visits) < req.POICount {
		s.logger.Info("pool exhausted before requested count",
			zap.String("theme", string(req.Theme)),
			zap.Int("requested", req.POICount),
			zap.Int("selected", len(visits)))
	}

	pools := scheduler.Pools{
		Restaurants: s.catalog.Restaurants(ctx),
	}
	// Lodging is needed for a requested hotel stay and for mid-tour day
	// rollovers; rentals only for walking tours that asked for one.
	if req.WantsLodging || req.Days > 1 {
		pools.Lodging = s.catalog.Lodging(ctx)
	}
	if req.Mode == models.ModeWalk && req.WantsRental {
		pools.Rentals = s.catalog.Rentals(ctx)
	}

	stops := s.scheduler.Build(req, visits, pools, started)

	itinerary := &models.Itinerary{
		ID:        uuid.New(),
		Request:   req,
		Stops:     stops,
		CreatedAt: started,
	}

	if s.stitcher != nil {
		coords := make([]models.Coordinate, 0, len(stops))
		for _, st := range stops {
			coords = append(coords, st.Coord)
		}
		itinerary.Route, itinerary.RouteGaps = s.stitcher.Stitch(ctx, coords)
	}

	span.SetAttributes(
		attribute.Int("tour.stops", len(stops)),
		attribute.Int("tour.route_gaps", itinerary.RouteGaps),
	)
	s.logger.Info("itinerary planned",
		zap.String("id", itinerary.ID.String()),
		zap.String("theme", string(req.Theme)),
		zap.Int("stops", len(stops)),
		zap.Int("route_gaps", itinerary.RouteGaps),
		zap.Duration("took", s.now().Sub(started)))

	return itinerary, nil
}
