// Package database wires up SQLite storage for the application.
//
// # Layout
//
// One connection is shared by domain-specific repository sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── favourites/      # Favourite country snapshots and user notes
//	└── audit/           # Audit trail of lookups, saves and comparisons
//
// Open the database once, then hand its gorm handle to each repository:
//
//	db, err := database.NewDatabase("./atlas.db")
//	favouritesRepo := favourites.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
// Repositories expose plain methods and sentinel errors; callers are expected
// to match on those errors (for example favourites.ErrNotFound) rather than
// inspecting gorm internals.
//
// New entities must be registered in database.go's AutoMigrate call, and a
// new domain gets its own sub-package with a Repository struct wrapping the
// shared *gorm.DB.
package database
