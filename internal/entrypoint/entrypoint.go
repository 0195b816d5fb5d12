package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/config"
	"github.com/mrlokans/atlas/internal/countries"
	"github.com/mrlokans/atlas/internal/database"
	auditdb "github.com/mrlokans/atlas/internal/database/audit"
	favouritesdb "github.com/mrlokans/atlas/internal/database/favourites"
	"github.com/mrlokans/atlas/internal/demo"
	"github.com/mrlokans/atlas/internal/favourites"
	http_controllers "github.com/mrlokans/atlas/internal/http"
	"github.com/mrlokans/atlas/internal/media"
	"github.com/mrlokans/atlas/internal/media/providers/cloudinary"
	"github.com/mrlokans/atlas/internal/metrics"
	"github.com/mrlokans/atlas/internal/scheduler"
	"github.com/mrlokans/atlas/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 1 second.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscanll.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can"t be catch, so don't need add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Atlas v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Create auditor for saving incoming JSON requests
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	// Audit trail persisted alongside the favourites
	auditService := audit.NewService(auditdb.NewRepository(db.DB))

	// REST Countries client and the population comparator built on it
	countryClient := countries.NewClient(cfg.Countries.BaseURL)
	comparator := countries.NewComparator(countryClient)

	// Image uploads are disabled unless Cloudinary credentials are configured
	var uploader media.Uploader = media.Discard{}
	if cfg.Media.Enabled {
		uploader = cloudinary.NewClient(cfg.Media.CloudName, cfg.Media.APIKey, cfg.Media.APISecret)
		log.Printf("Media uploads enabled (Cloudinary cloud %q)", cfg.Media.CloudName)
	} else {
		log.Printf("WARNING: Cloudinary credentials are not set. Image uploads will be discarded. Set 'CLOUDINARY_CLOUD_NAME', 'CLOUDINARY_API_KEY' and 'CLOUDINARY_API_SECRET' environment variables to enable.")
	}

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New()
	}

	// Favourites service wired to the lookup client and upload provider
	favouritesService := favourites.NewService(favouritesdb.NewRepository(db.DB), countryClient, uploader)
	favouritesService.SetAuditService(auditService)
	favouritesService.SetMetrics(appMetrics)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewDestroyMediaQueue(uploader),
			tasks.NewCleanupAuditEventsQueue(auditService, auditor),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		favouritesService.SetTaskClient(taskClient)
	}

	// Periodic audit cleanup rides on the task queue when it is running
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.AuditCleanup.Enabled {
		cleanupScheduler = scheduler.NewAuditCleanupScheduler(
			taskClient,
			auditService,
			cfg.AuditCleanup.Schedule,
			cfg.Audit.RetentionDays,
		)
		if err := cleanupScheduler.Start(); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}

	if cfg.Demo.Enabled {
		if _, err := demo.NewSeeder(favouritesdb.NewRepository(db.DB)).Seed(); err != nil {
			log.Printf("WARNING: demo seed failed: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:          db,
		Auditor:           auditor,
		CountryLookup:     countryClient,
		CountryComparer:   comparator,
		FavouritesService: favouritesService,
		AuditService:      auditService,
		Metrics:           appMetrics,
		Version:           version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
