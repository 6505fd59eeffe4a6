package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/geocode"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/tours"
	"github.com/FACorreiaa/go-wayfarer/internal/app/services"
	"github.com/FACorreiaa/go-wayfarer/internal/pkg/cache"
)

// Dependencies carries the wired services the HTTP surface needs.
type Dependencies struct {
	Planner     services.Planner
	Geocoder    geocode.Service
	StartPoints tours.StartPointFinder
}

// Setup registers all routes on the router.
func Setup(r *gin.Engine, deps Dependencies, logger *zap.Logger) {
	tourHandlers := tours.NewTourHandlers(deps.Planner, deps.Geocoder, deps.StartPoints, cache.Cache, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/start-points", tourHandlers.HandleStartPoints)
		api.POST("/tours", tourHandlers.HandleCreateTour)
		api.GET("/tours/:id", tourHandlers.HandleGetTour)
		api.GET("/tours/:id/export.csv", tourHandlers.HandleExportCSV)
		api.GET("/tours/:id/export.pdf", tourHandlers.HandleExportPDF)
		api.GET("/tours/:id/map", tourHandlers.HandleMap)
	}
}
