package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geocode"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/osm"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/route"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/routing"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/scheduler"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/themes"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-wayfarer/internal/app/services"
	"github.com/FACorreiaa/go-wayfarer/internal/pkg/config"
	applog "github.com/FACorreiaa/go-wayfarer/internal/pkg/logger"
	"github.com/FACorreiaa/go-wayfarer/internal/routes"
	"github.com/FACorreiaa/go-wayfarer/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	// Initialize logger
	if err := applog.Init(zap.InfoLevel, zap.String("service", "wayfarer")); err != nil {
		return err
	}
	logger := applog.Log
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize observability
	otelShutdown, err := server.InitObservability("wayfarer", ":"+cfg.MetricsPort, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	// Create server (connects Postgres only when the catalog lives there)
	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	// Load the amenity catalog
	catalog, err := loadCatalog(cfg, srv, logger)
	if err != nil {
		return err
	}
	logger.Info("Amenity catalog loaded", zap.Int("pois", len(catalog)))
	metrics.Get().CatalogSizeGauge.Record(context.Background(), int64(len(catalog)))

	taxonomy, err := themes.Default()
	if err != nil {
		return err
	}
	filter := themes.NewFilter(taxonomy, logger)

	// Collaborator clients
	overpass := osm.NewOverpassClient(cfg.Collaborators.OverpassURL, logger)
	geocoder := geocode.NewNominatimClient(cfg.Collaborators.NominatimURL, logger)
	roadNetwork := routing.NewOSRMClient(cfg.Collaborators.OSRMURL, cfg.Collaborators.OSRMProfile, logger)
	wikidata := osm.NewWikidataClient(cfg.Collaborators.WikidataURL, logger)
	catalog = wikidata.Enrich(context.Background(), catalog)

	// Planning pipeline
	catalogService := services.NewCatalogService(catalog, overpass, taxonomy, filter, cfg.Catalog.Regions, nil, logger)
	planner := services.NewPlannerService(
		catalogService,
		filter,
		scheduler.New(logger),
		route.NewStitcher(roadNetwork, logger),
		cfg.ServiceRegion,
		cfg.Catalog.MinTagCount,
		logger,
	)

	// Setup router
	router := server.SetupRouter(routes.Dependencies{
		Planner:     planner,
		Geocoder:    geocoder,
		StartPoints: catalogService,
	}, logger)
	srv.SetRouter(router)

	// Start pprof server (on separate port, not exposed publicly)
	server.StartPprofServer(":6060")

	// Create HTTP server
	httpServer := srv.HTTPServer()

	// Setup graceful shutdown
	done := make(chan bool, 1)
	go server.GracefulShutdown(httpServer, logger, done)

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	// Wait for graceful shutdown to complete
	<-done
	logger.Info("Graceful shutdown complete")

	return nil
}

// loadCatalog reads the base amenity catalog from the configured source.
func loadCatalog(cfg *config.Config, srv *server.Server, logger *zap.Logger) ([]models.PointOfInterest, error) {
	if cfg.Catalog.Source == "postgres" {
		repo := osm.NewPostgresCatalogRepository(srv.GetDBPool(), logger)
		if cfg.ServiceRegion != nil {
			return repo.GetByBoundingBox(context.Background(), *cfg.ServiceRegion)
		}
		return repo.GetByCategories(context.Background(), nil)
	}
	return osm.LoadDataset(cfg.Catalog.DatasetPath, logger)
}
