package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go-recruitment-scheduler/internal/provider/calendar"
	"go-recruitment-scheduler/internal/usecase"
	"go-recruitment-scheduler/pkg/retry"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	DBUrl    string
	// Redis Configuration (optional, shared rate limit counters)
	RedisURL      string
	RedisPassword string
	// Booking provider
	BookingAPIURL     string
	BookingAPIKey     string
	BookingTimeout    time.Duration // per attempt
	BookingRatePerSec float64
	// Scheduling
	SlotStepMinutes       int
	BookingMaxRetries     int
	BookingInitialBackoff time.Duration
	BookingMaxBackoff     time.Duration
	PendingMaxLifetime    time.Duration
	ReconcileCron         string
	// Matching
	RankWorkers int
	// Rate Limiting Configuration
	RateLimitWindowSeconds     int
	RateLimitScheduleThreshold int
	RateLimitFailClosed        bool
	// HTTP
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DBUrl:    getEnv("DATABASE_URL", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Booking provider
		BookingAPIURL:     strings.TrimRight(getEnv("BOOKING_API_URL", ""), "/"),
		BookingAPIKey:     getEnv("BOOKING_API_KEY", ""),
		BookingTimeout:    getEnvDuration("BOOKING_TIMEOUT", 10*time.Second),
		BookingRatePerSec: getEnvFloat("BOOKING_RATE_PER_SEC", 5),
		// Scheduling
		SlotStepMinutes:       getEnvInt("SLOT_STEP_MINUTES", 30),
		BookingMaxRetries:     getEnvInt("BOOKING_MAX_RETRIES", 3),
		BookingInitialBackoff: getEnvDuration("BOOKING_INITIAL_BACKOFF", 200*time.Millisecond),
		BookingMaxBackoff:     getEnvDuration("BOOKING_MAX_BACKOFF", 2*time.Second),
		PendingMaxLifetime:    getEnvDuration("PENDING_MAX_LIFETIME", 10*time.Minute),
		ReconcileCron:         getEnv("RECONCILE_CRON", "@every 1m"),
		// Matching
		RankWorkers: getEnvInt("RANK_WORKERS", 4),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:     getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitScheduleThreshold: getEnvInt("RATE_LIMIT_SCHEDULE_THRESHOLD", 20),
		RateLimitFailClosed:        getEnvBool("RATE_LIMIT_FAIL_CLOSED", false),
		// HTTP
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	cfg.sanitize()

	if cfg.DBUrl == "" {
		slog.Warn("DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not configured. Rate limiting will use in-memory counters.")
	}
	if cfg.BookingAPIURL == "" {
		slog.Warn("BOOKING_API_URL not configured. Interview booking will fail.")
	}
	if cfg.PendingMaxLifetime <= cfg.Booking().ExternalTimeout {
		slog.Warn("PENDING_MAX_LIFETIME does not exceed the external booking budget; in-flight bookings may be expired",
			"pending_max_lifetime", cfg.PendingMaxLifetime, "external_budget", cfg.Booking().ExternalTimeout)
	}

	return cfg, nil
}

// sanitize resets out-of-range values to their defaults.
func (c *Config) sanitize() {
	positiveInt(&c.SlotStepMinutes, "SLOT_STEP_MINUTES", 30)
	positiveInt(&c.RankWorkers, "RANK_WORKERS", 4)
	positiveInt(&c.RateLimitWindowSeconds, "RATE_LIMIT_WINDOW_SECONDS", 60)
	positiveInt(&c.RateLimitScheduleThreshold, "RATE_LIMIT_SCHEDULE_THRESHOLD", 20)
	if c.BookingMaxRetries < 0 {
		slog.Warn("invalid config value, using default", "key", "BOOKING_MAX_RETRIES", "value", c.BookingMaxRetries)
		c.BookingMaxRetries = 3
	}
	positiveDuration(&c.BookingTimeout, "BOOKING_TIMEOUT", 10*time.Second)
	positiveDuration(&c.BookingInitialBackoff, "BOOKING_INITIAL_BACKOFF", 200*time.Millisecond)
	positiveDuration(&c.BookingMaxBackoff, "BOOKING_MAX_BACKOFF", 2*time.Second)
	positiveDuration(&c.PendingMaxLifetime, "PENDING_MAX_LIFETIME", 10*time.Minute)
	positiveDuration(&c.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 15*time.Second)
	if c.BookingMaxBackoff < c.BookingInitialBackoff {
		c.BookingMaxBackoff = c.BookingInitialBackoff
	}
}

func (c *Config) SlotStep() time.Duration {
	return time.Duration(c.SlotStepMinutes) * time.Minute
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// Booking derives the orchestrator settings. The external budget covers every
// attempt plus the longest jittered backoff between them.
func (c *Config) Booking() usecase.BookingConfig {
	cfg := usecase.DefaultBookingConfig()
	cfg.Retry = retry.Policy{
		MaxRetries:      uint64(c.BookingMaxRetries),
		InitialInterval: c.BookingInitialBackoff,
		MaxInterval:     c.BookingMaxBackoff,
		AttemptTimeout:  c.BookingTimeout,
	}
	cfg.ExternalTimeout = cfg.Retry.Budget()
	cfg.PendingMaxLifetime = c.PendingMaxLifetime
	return cfg
}

func (c *Config) Provider() calendar.Config {
	return calendar.Config{
		BaseURL:       c.BookingAPIURL,
		APIKey:        c.BookingAPIKey,
		Timeout:       c.BookingTimeout,
		RatePerSecond: c.BookingRatePerSec,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		slog.Warn("invalid number in environment, using default", "key", key, "value", value)
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("250ms", "10m").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positiveInt(v *int, key string, fallback int) {
	if *v <= 0 {
		slog.Warn("invalid config value, using default", "key", key, "value", *v)
		*v = fallback
	}
}

func positiveDuration(v *time.Duration, key string, fallback time.Duration) {
	if *v <= 0 {
		slog.Warn("invalid config value, using default", "key", key, "value", *v)
		*v = fallback
	}
}
