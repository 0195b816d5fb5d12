package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	countriesController := NewCountriesController(cfg.CountryLookup, cfg.CountryComparer, cfg.AuditService, cfg.Metrics)
	favouritesController := NewFavouritesController(cfg.FavouritesService, cfg.Auditor)

	// Welcome endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "atlas",
			"version": cfg.Version,
			"message": "Country metadata service. See /health for status.",
		})
	})

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Prometheus metrics endpoint
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Country endpoints. The catch-all :name route is registered last so
	// the static routes win.
	router.GET("/countries/compare", countriesController.CompareCountries)
	router.POST("/countries/favorites", favouritesController.SaveFavourite)
	router.GET("/countries/favorites", favouritesController.ListFavourites)
	router.GET("/countries/favorites/:id", favouritesController.GetFavourite)
	router.PUT("/countries/favorites/:id", favouritesController.UpdateFavourite)
	router.PATCH("/countries/favorites/:id", favouritesController.UpdateFavourite)
	router.DELETE("/countries/favorites/:id", favouritesController.DeleteFavourite)
	router.GET("/countries/:name", countriesController.GetCountry)

	// Audit trail endpoints
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/api/audit", auditController.GetAuditEvents)
	}

	return router
}
