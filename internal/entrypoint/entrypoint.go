package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/links"
	"github.com/mrlokans/library/internal/database/users"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/logger"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains it within
// the configured shutdown timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if cfg.Log.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting library service", zap.String("version", version))

	db, err := database.NewDatabaseWithOptions(cfg.Database.Path, database.Options{Logger: log})
	if err != nil {
		log.Fatal("failed to initialize database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	auditStore := auditRepo.NewRepository(db.DB)

	// The journal falls back to synchronous writes when the queue is off.
	var eventQueue audit.EventQueue
	var cleanupEnqueuer scheduler.CleanupEnqueuer
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:            cfg.Tasks.Workers,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, log)
		if err != nil {
			log.Fatal("failed to initialize task queue", zap.Error(err))
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("error closing task client", zap.Error(err))
			}
		}()
		eventQueue = taskClient
		cleanupEnqueuer = taskClient
	}

	journal := audit.NewService(auditStore, eventQueue)

	if taskClient != nil {
		taskClient.Register(
			tasks.NewRecordAuditEventQueue(auditStore),
			tasks.NewCleanupAuditEventsQueue(journal),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	hasher := auth.NewBcryptHasher(cfg.Security.BcryptCost)

	var rateLimiter *auth.RateLimiter
	if cfg.Security.RateLimitRPS > 0 {
		rateLimiter = auth.NewRateLimiter(auth.RateLimitConfig{
			RequestsPerSecond: cfg.Security.RateLimitRPS,
			Burst:             cfg.Security.RateLimitBurst,
		})
	}

	cleanup := scheduler.NewAuditCleanupScheduler(scheduler.AuditCleanupConfig{
		Schedule:      cfg.Audit.CleanupSchedule,
		RetentionDays: cfg.Audit.RetentionDays,
		Enqueuer:      cleanupEnqueuer,
		Cleaner:       journal,
		Logger:        log,
	})
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := cleanup.Start(schedulerCtx); err != nil {
		log.Error("failed to start audit cleanup scheduler", zap.Error(err))
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Users:       services.NewUserService(users.NewRepository(db.DB), hasher, journal),
		Books:       services.NewBookService(books.NewRepository(db.DB), journal),
		Authors:     services.NewAuthorService(authors.NewRepository(db.DB), journal),
		Library:     services.NewLibraryService(links.NewRepository(db.DB), journal),
		Audit:       journal,
		Database:    db,
		Logger:      log,
		RateLimiter: rateLimiter,
		HSTSMaxAge:  cfg.Security.HSTSMaxAge,
		Version:     version,
	})

	Serve(router, cfg, log, func(ctx context.Context) {
		cleanup.Stop()
		if rateLimiter != nil {
			rateLimiter.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	})
}
