package http

import (
	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/database"
	"github.com/mrlokans/atlas/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Auditor  *audit.Auditor

	// Country lookups and comparisons
	CountryLookup   CountryLookup
	CountryComparer CountryComparer

	// Favourites operations
	FavouritesService FavouritesService

	// Audit trail (optional)
	AuditService *audit.Service

	// Prometheus counters; also controls the /metrics endpoint (optional)
	Metrics *metrics.Metrics

	// Application info
	Version string
}
