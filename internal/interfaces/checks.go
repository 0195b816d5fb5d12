package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/countries"
	"github.com/mrlokans/atlas/internal/favourites"
	"github.com/mrlokans/atlas/internal/http"
	"github.com/mrlokans/atlas/internal/media"
	"github.com/mrlokans/atlas/internal/media/providers/cloudinary"
	"github.com/mrlokans/atlas/internal/tasks"
)

// =============================================================================
// Country Lookups
// =============================================================================

// CountryProvider implementations
var _ countries.CountryProvider = (*countries.Client)(nil)

// CountryFetcher implementations
var _ favourites.CountryFetcher = (*countries.Client)(nil)

// HTTP-facing lookup and comparison implementations
var _ http.CountryLookup = (*countries.Client)(nil)
var _ http.CountryComparer = (*countries.Comparator)(nil)

// =============================================================================
// Favourites
// =============================================================================

// FavouritesService implementations
var _ http.FavouritesService = (*favourites.Service)(nil)

// =============================================================================
// Media Hosting
// =============================================================================

// Uploader implementations
var _ media.Uploader = (*cloudinary.Client)(nil)
var _ media.Uploader = media.Discard{}

// MediaDestroyer implementations (background image removal)
var _ tasks.MediaDestroyer = (*cloudinary.Client)(nil)
var _ tasks.MediaDestroyer = media.Discard{}

// =============================================================================
// Audit Trail
// =============================================================================

// AuditEventCleaner implementations
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// AuditFilePruner implementations
var _ tasks.AuditFilePruner = (*audit.Auditor)(nil)
