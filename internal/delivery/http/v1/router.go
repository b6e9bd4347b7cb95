package v1

import (
	"log/slog"
	"net/http"

	"go-recruitment-scheduler/internal/delivery/http/middleware"
	"go-recruitment-scheduler/internal/delivery/http/response"
	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/metrics"
	"go-recruitment-scheduler/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	MatchingUC     domain.MatchingUsecase
	AvailabilityUC domain.AvailabilityUsecase
	BookingUC      domain.BookingUsecase
	HealthUC       usecase.HealthUsecase
	// RateLimitStore is the shared store (Redis); nil means per-process only.
	RateLimitStore    middleware.RateLimitStore
	ScheduleRateLimit middleware.RateLimitConfig
	AllowedOrigins    []string
	Logger            *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.ErrorHandler(deps.Logger))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	writeLimit := middleware.RateLimitMiddleware(
		deps.RateLimitStore,
		middleware.NewMemoryRateLimitStore(deps.ScheduleRateLimit.Window),
		deps.ScheduleRateLimit,
		deps.Logger,
	)

	NewJobHandler(v1, deps.MatchingUC)
	NewAvailabilityHandler(v1, deps.AvailabilityUC)
	NewInterviewHandler(v1, deps.BookingUC, writeLimit)

	return r
}
