package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-recruitment-scheduler/internal/delivery/http/response"
	"go-recruitment-scheduler/pkg/apperror"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for the store
	KeyPrefix string
	// Whether to fail closed (reject) when the primary store is unavailable
	FailClosed bool
}

// RateLimitStore counts hits per key in fixed windows.
type RateLimitStore interface {
	// Hit records one request and returns the count in the current window
	// and when that window resets.
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// RedisRateLimitStore shares counters across instances.
type RedisRateLimitStore struct {
	client *goredis.Client
}

func NewRedisRateLimitStore(client *goredis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

func (s *RedisRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	ttlSeconds := int(window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, s.client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimitStore is the per-process fallback. Expired windows are
// evicted by go-cache's janitor.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries *gocache.Cache
	now     func() time.Time
}

func NewMemoryRateLimitStore(cleanupInterval time.Duration) *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		entries: gocache.New(gocache.NoExpiration, cleanupInterval),
		now:     time.Now,
	}
}

func (s *MemoryRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var entry *memoryEntry
	if v, ok := s.entries.Get(key); ok {
		entry = v.(*memoryEntry)
	}
	if entry == nil || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(window)}
		s.entries.Set(key, entry, window)
	}
	entry.count++

	return entry.count, entry.resetAt, nil
}

// DefaultRateLimitConfig returns sensible defaults for API rate limiting
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:      100,
		Window:     time.Minute,
		KeyPrefix:  "rl:ip:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// ScheduleRateLimitConfig limits booking writes, which fan out to the
// external provider.
func ScheduleRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	cfg := DefaultRateLimitConfig()
	cfg.Limit = limit
	cfg.Window = window
	cfg.KeyPrefix = "rl:schedule:"
	return cfg
}

// RateLimitMiddleware counts requests in primary (Redis when configured) and
// falls back to the in-process store when primary is nil or failing.
func RateLimitMiddleware(primary, fallback RateLimitStore, config RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time
		var err error

		if primary != nil {
			count, resetAt, err = primary.Hit(c.Request.Context(), key, config.Window)
			if err != nil {
				logger.Warn("rate limit store unavailable", "request_id", response.RequestID(c), "error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
			}
		}
		if primary == nil || err != nil {
			count, resetAt, _ = fallback.Hit(c.Request.Context(), key, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Info("rate limit triggered",
				"request_id", response.RequestID(c), "client_ip", c.ClientIP(), "path", c.FullPath())

			_ = c.Error(apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Next()
	}
}
