package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-recruitment-scheduler/config"
	_ "go-recruitment-scheduler/docs" // Important for Swagger
	v1 "go-recruitment-scheduler/internal/delivery/http/v1"
	"go-recruitment-scheduler/internal/delivery/http/middleware"
	"go-recruitment-scheduler/internal/matching"
	"go-recruitment-scheduler/internal/metrics"
	"go-recruitment-scheduler/internal/provider/calendar"
	"go-recruitment-scheduler/internal/repository/postgres"
	"go-recruitment-scheduler/internal/usecase"
	"go-recruitment-scheduler/pkg/database"
	"go-recruitment-scheduler/pkg/logger"
	pkgredis "go-recruitment-scheduler/pkg/redis"
	"go-recruitment-scheduler/pkg/validation"
)

// @title           Recruitment Scheduler API
// @version         1.0
// @description     Candidate matching and interview scheduling service.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// 2. Setup Logger
	log := logger.Init(cfg.LogLevel)
	log.Info("Starting recruitment scheduler", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, log)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	healthChecks := map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
	}

	// 4. Setup Redis (optional)
	var rateLimitStore middleware.RateLimitStore
	redisClient, err := pkgredis.NewClient(ctx, pkgredis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		log.Warn("Redis unavailable, rate limiting is per process", "error", err)
	} else {
		defer redisClient.Close()
		rateLimitStore = middleware.NewRedisRateLimitStore(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error {
			return pkgredis.HealthCheck(ctx, redisClient)
		}
	}

	// 5. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	availabilityRepo := postgres.NewAvailabilityRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 6. Setup Booking Provider
	bookingProvider := calendar.NewClient(cfg.Provider(), log)

	// 7. Setup UseCases
	validate := validation.New()
	availabilityUC := usecase.NewAvailabilityUsecase(availabilityRepo, interviewRepo, validate, cfg.SlotStep(), log)
	matchingUC := usecase.NewMatchingUsecase(candidateRepo, jobRepo, matching.NewRanker(cfg.RankWorkers), log)
	bookingUC := usecase.NewBookingUsecase(interviewRepo, availabilityUC, bookingProvider, validate, cfg.Booking(), log)
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 8. Setup Reconciler
	reconciler, err := usecase.NewReconciler(bookingUC, cfg.ReconcileCron, time.Minute, log)
	if err != nil {
		log.Error("Invalid reconcile schedule", "schedule", cfg.ReconcileCron, "error", err)
		os.Exit(1)
	}
	reconciler.Start()

	// 9. Setup Router
	metrics.Register()
	scheduleLimit := middleware.ScheduleRateLimitConfig(cfg.RateLimitScheduleThreshold, cfg.RateLimitWindow())
	scheduleLimit.FailClosed = cfg.RateLimitFailClosed

	router := v1.NewRouter(v1.RouterDeps{
		MatchingUC:        matchingUC,
		AvailabilityUC:    availabilityUC,
		BookingUC:         bookingUC,
		HealthUC:          healthUC,
		RateLimitStore:    rateLimitStore,
		ScheduleRateLimit: scheduleLimit,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		Logger:            log,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	reconciler.Stop(shutdownCtx)
	if err := bookingUC.Drain(shutdownCtx); err != nil {
		log.Warn("Bookings still in flight at exit; reconciler will expire them", "error", err)
	}

	log.Info("Server exiting")
}
