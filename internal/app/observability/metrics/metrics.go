package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal     metric.Int64Counter
	HTTPRequestDuration   metric.Float64Histogram
	ToursPlannedTotal     metric.Int64Counter
	TourPlanDuration      metric.Float64Histogram
	ScheduleStopsTotal    metric.Int64Counter
	RoutingGapsTotal      metric.Int64Counter
	POIFetchErrorsTotal   metric.Int64Counter
	CatalogSizeGauge      metric.Int64Gauge
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("wayfarer")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.ToursPlannedTotal, err = meter.Int64Counter(
			"tours_planned_total",
			metric.WithDescription("Total number of itineraries produced"),
			metric.WithUnit("{tour}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tours_planned_total: %v", err)
		}

		m.TourPlanDuration, err = meter.Float64Histogram(
			"tour_plan_duration_seconds",
			metric.WithDescription("Duration of the plan pipeline in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tour_plan_duration_seconds: %v", err)
		}

		m.ScheduleStopsTotal, err = meter.Int64Counter(
			"schedule_stops_total",
			metric.WithDescription("Total number of schedule stops emitted"),
			metric.WithUnit("{stop}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create schedule_stops_total: %v", err)
		}

		m.RoutingGapsTotal, err = meter.Int64Counter(
			"routing_gaps_total",
			metric.WithDescription("Total number of skipped route segments"),
			metric.WithUnit("{segment}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create routing_gaps_total: %v", err)
		}

		m.POIFetchErrorsTotal, err = meter.Int64Counter(
			"poi_fetch_errors_total",
			metric.WithDescription("Total number of failed POI acquisition calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create poi_fetch_errors_total: %v", err)
		}

		m.CatalogSizeGauge, err = meter.Int64Gauge(
			"catalog_pois_current",
			metric.WithDescription("Number of POIs in the loaded catalog"),
			metric.WithUnit("{poi}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_pois_current: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Initialized reports whether InitAppMetrics has run. Handlers check this
// so request paths stay usable in tests that never boot observability.
func Initialized() bool {
	return appMetrics != nil
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
