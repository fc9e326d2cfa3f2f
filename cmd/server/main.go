// Package main is the entry point for the Campus Schedule Hub API server.
//
// The server owns the whole pipeline: it imports the published timetable
// grids into a course catalog, guards the student's schedule with the
// conflict engine, and tracks attendance against the university's risk
// thresholds.
//
// The architecture follows Clean Architecture and DDD:
//   - Domain: pure scheduling and attendance logic, zero external deps
//   - Application: use case orchestration (Commands/Queries)
//   - Infrastructure: Postgres, Redis, the sheets downloader, jobs
//   - Interface: the REST API
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campus-hub/campus-schedule-hub/config"

	// Application layer
	"github.com/campus-hub/campus-schedule-hub/internal/application/command"
	"github.com/campus-hub/campus-schedule-hub/internal/application/eventhandler"
	"github.com/campus-hub/campus-schedule-hub/internal/application/query"

	// Domain layer
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/timetable"

	// Infrastructure layer
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/external/sheets"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/messaging"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/persistence/postgres"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/persistence/redis"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/scheduler"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/scheduler/jobs"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/service"

	// Interface layer
	httpserver "github.com/campus-hub/campus-schedule-hub/internal/interface/http"
	"github.com/campus-hub/campus-schedule-hub/internal/interface/http/handlers"

	// Packages
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
	"github.com/campus-hub/campus-schedule-hub/pkg/retry"
	"github.com/campus-hub/campus-schedule-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Campus Schedule Hub",
		"env", cfg.App.Environment,
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
	)

	appLog := setupAppLogger(cfg)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	// The database may still be starting when we are; retry the first ping.
	err = retry.DatabaseRetrier().Do(ctx, func(ctx context.Context) error {
		return retry.Retryable(dbConn.Ping(ctx))
	})
	if err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("running database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations completed")

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (catalog store)
	// ─────────────────────────────────────────────────────────────────────────
	// The imported catalog lives in Redis, so unlike a pure cache the
	// connection is not optional.
	log.Info("connecting to Redis...")
	redisCache, err := redis.NewCache(redisConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisCache.Close()
	log.Info("Redis connection established")

	catalogStore := redis.NewCatalogCache(redisCache)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	enrollRepo := postgres.NewEnrollmentRepository(dbConn)
	attendRepo := postgres.NewAttendanceRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. EVENT BUS & DISPATCHER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus...", "backend", cfg.Messaging.Backend)
	eventBusConfig := messaging.DefaultInMemoryEventBusConfig()
	eventBusConfig.Logger = log
	eventBusConfig.AsyncMode = true

	var eventBus interface {
		shared.EventBus
		Close() error
	}
	if cfg.Messaging.Backend == "redis" {
		// Multiple instances share domain events over Pub/Sub.
		eventBus, err = messaging.NewRedisEventBus(messaging.RedisEventBusConfig{
			Client:         messaging.NewCacheRedisClient(redisCache),
			ChannelName:    cfg.Messaging.Channel,
			LocalBusConfig: eventBusConfig,
			Logger:         log,
		})
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}
	} else {
		eventBus = messaging.NewInMemoryEventBus(eventBusConfig)
	}
	defer func() {
		log.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	dispatcher := messaging.NewDispatcher(messaging.DefaultDispatcherConfig(eventBus))
	dispatcher.Use(messaging.RecoveryMiddleware(log))
	dispatcher.Use(messaging.LoggingMiddleware(log))
	dispatcher.Use(messaging.MetricsMiddleware(dispatcher.Metrics()))
	dispatcher.Use(messaging.TimeoutMiddleware(30 * time.Second))

	catalogEvents := eventhandler.NewOnCatalogImportedHandler(appLog)
	riskEvents := eventhandler.NewOnRiskChangedHandler(nil, appLog)

	if err := dispatcher.Register(shared.EventCatalogImported, "log_catalog_import", catalogEvents.Handle); err != nil {
		return fmt.Errorf("failed to register event handler: %w", err)
	}
	if err := dispatcher.Register(shared.EventCatalogRefreshFailed, "log_refresh_failure", catalogEvents.Handle); err != nil {
		return fmt.Errorf("failed to register event handler: %w", err)
	}
	if cfg.Features.IsEnabled(config.FeatureAttendanceRiskEvents, nil) {
		if err := dispatcher.Register(shared.EventAttendanceRiskChanged, "alert_risk_change", riskEvents.Handle); err != nil {
			return fmt.Errorf("failed to register event handler: %w", err)
		}
	}

	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start dispatcher: %w", err)
	}
	defer func() {
		log.Info("stopping dispatcher...")
		_ = dispatcher.Stop()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. EXTERNAL CLIENTS (timetable sheets)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing sheets client...", "days", len(cfg.Sheets.DayURLs))
	sheetsConfig := sheets.DefaultClientConfig(cfg.Sheets.DayURLs)
	sheetsConfig.Timeout = cfg.Sheets.RequestTimeout
	sheetsConfig.Logger = appLog
	sheetsClient := sheets.NewClient(sheetsConfig)

	// Read-through grid cache: a refresh that dies halfway does not
	// re-download the days that already arrived.
	gridSource := redis.NewCachedGridSource(sheetsClient, redis.NewGridCache(redisCache, 0))

	// ─────────────────────────────────────────────────────────────────────────
	// 9. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	semStart, semEnd := semesterBounds(timeutil.Now())
	calendar := service.NewSemesterCalendar(semStart, semEnd)
	calc := calendar.Calculator()

	parser := timetable.NewParser(timetable.DefaultConfig())

	// Commands
	importCmd := command.NewImportTimetableHandler(gridSource, catalogStore, parser, eventBus, appLog)
	enrollCmd := command.NewEnrollCourseHandler(enrollRepo, eventBus)
	dropCmd := command.NewDropCourseHandler(enrollRepo, attendRepo, eventBus)
	recordCmd := command.NewRecordAttendanceHandler(enrollRepo, attendRepo, calc, eventBus)

	// Queries
	catalogQuery := query.NewGetCatalogHandler(catalogStore, cfg.Sheets.CatalogTTL)
	sectionsQuery := query.NewGetSectionsHandler(catalogStore, cfg.Sheets.CatalogTTL)
	scheduleQuery := query.NewGetScheduleHandler(enrollRepo)
	conflictsQuery := query.NewCheckConflictsHandler(enrollRepo)
	statsQuery := query.NewGetAttendanceStatsHandler(enrollRepo, attendRepo, calc)
	simulateQuery := query.NewSimulateAttendanceHandler(enrollRepo, attendRepo, calc)
	summaryQuery := query.NewGetAttendanceSummaryHandler(enrollRepo, attendRepo, calc)
	dayStatusQuery := query.NewGetDayStatusHandler(enrollRepo, attendRepo)

	// ─────────────────────────────────────────────────────────────────────────
	// 10. BACKGROUND JOBS
	// ─────────────────────────────────────────────────────────────────────────
	var jobScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		log.Info("initializing scheduler...")

		schedConfig := scheduler.DefaultSchedulerConfig()
		schedConfig.Logger = log
		schedConfig.Timezone = cfg.App.Location
		jobScheduler = scheduler.NewScheduler(schedConfig)

		riskJob := jobs.NewRiskScanJob(enrollRepo, attendRepo, calc, eventBus, log, jobs.RiskScanConfig{
			Timeout: cfg.Scheduler.JobTimeout,
		})
		cleanupJob := jobs.NewCleanupRecordsJob(enrollRepo, attendRepo, log, jobs.CleanupRecordsConfig{
			Timeout: cfg.Scheduler.JobTimeout,
		})

		if cfg.Features.IsEnabled(config.FeatureCatalogAutoRefresh, nil) {
			refreshJob := jobs.NewRefreshTimetableJob(importCmd, eventBus, log, jobs.RefreshTimetableConfig{
				Timeout: cfg.Scheduler.JobTimeout,
				// Only one instance should hit the sheet export at a time.
				Lock: redis.NewDistributedLock(redisCache, "catalog_refresh", cfg.Scheduler.JobTimeout),
			})
			if err := jobScheduler.Register(refreshJob, scheduler.NewIntervalSchedule(cfg.Scheduler.RefreshTimetableInterval)); err != nil {
				return fmt.Errorf("failed to register refresh job: %w", err)
			}
		}
		if err := jobScheduler.Register(riskJob, scheduler.NewIntervalSchedule(cfg.Scheduler.RiskScanInterval)); err != nil {
			return fmt.Errorf("failed to register risk scan job: %w", err)
		}
		cleanupSchedule, err := scheduler.ParseCronExpression(cfg.Scheduler.CleanupCron)
		if err != nil {
			return fmt.Errorf("invalid cleanup cron expression: %w", err)
		}
		if err := jobScheduler.Register(cleanupJob, cleanupSchedule); err != nil {
			return fmt.Errorf("failed to register cleanup job: %w", err)
		}

		if err := jobScheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			log.Info("stopping scheduler...")
			_ = jobScheduler.Stop()
		}()
	} else {
		log.Info("scheduler disabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 11. HEALTH CHECKS
	// ─────────────────────────────────────────────────────────────────────────
	healthChecker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	healthChecker.AddCheck("database", handlers.NewDatabaseCheck(dbConn))
	healthChecker.AddCheck("cache", handlers.NewCacheCheck(redisCache))
	if len(cfg.Sheets.DayURLs) > 0 {
		healthChecker.AddCheck("sheets", handlers.NewSourceCheck(sheetsClient))
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 12. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing HTTP server...")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	if keys := os.Getenv("API_KEYS"); keys != "" {
		httpConfig.APIKeys = strings.Split(keys, ",")
	}

	httpDeps := httpserver.Dependencies{
		EnrollCourseHandler:         enrollCmd,
		DropCourseHandler:           dropCmd,
		RecordAttendanceHandler:     recordCmd,
		ImportTimetableHandler:      importCmd,
		GetCatalogHandler:           catalogQuery,
		GetSectionsHandler:          sectionsQuery,
		GetScheduleHandler:          scheduleQuery,
		CheckConflictsHandler:       conflictsQuery,
		GetAttendanceStatsHandler:   statsQuery,
		SimulateAttendanceHandler:   simulateQuery,
		GetAttendanceSummaryHandler: summaryQuery,
		GetDayStatusHandler:         dayStatusQuery,
		Logger:                      appLog,
		HealthChecker:               healthChecker,
	}

	httpServer := httpserver.NewServer(httpConfig, httpDeps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", httpServer.Address())
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 13. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("Campus Schedule Hub is running",
		"http_address", httpServer.Address(),
		"semester_start", semStart.Format("2006-01-02"),
		"semester_end", semEnd.Format("2006-01-02"),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		log.Error("service error", "error", err)
		return err
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", "error", err)
		return err
	}

	// Scheduler, dispatcher, event bus, Redis and the database close
	// through the deferred calls above, in reverse order.
	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger configures structured logging for the infrastructure layer.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

// setupAppLogger configures the application-layer logger.
func setupAppLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts)
}

// redisConfigFrom maps the loaded configuration onto the cache config.
func redisConfigFrom(cfg *config.Config) redis.Config {
	rc := redis.DefaultConfig()
	rc.Host = cfg.Redis.Host
	rc.Port = cfg.Redis.Port
	rc.Password = cfg.Redis.Password
	rc.DB = cfg.Redis.DB
	rc.PoolSize = cfg.Redis.PoolSize
	rc.MinIdleConns = cfg.Redis.MinIdleConns
	rc.DialTimeout = cfg.Redis.DialTimeout
	rc.ReadTimeout = cfg.Redis.ReadTimeout
	rc.WriteTimeout = cfg.Redis.WriteTimeout
	return rc
}

// semesterBounds derives the current semester window from the date:
// spring runs mid-January through May, fall runs August through
// mid-December. Courses enrolled with explicit dates override these.
func semesterBounds(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	if now.Month() <= time.June {
		return timeutil.Date(year, 1, 15), timeutil.Date(year, 5, 31)
	}
	return timeutil.Date(year, 8, 1), timeutil.Date(year, 12, 15)
}
