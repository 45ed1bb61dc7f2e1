package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis errors
	FailClosed bool
}

// AuthRateLimitConfig is the strict per-IP budget shared by register and login.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: true,
	}
}

// ContactRateLimitConfig keeps the public contact relay from being used to spam the owner.
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:contact:",
	}
}

// GlobalRateLimitConfig is the lenient per-IP budget for every other route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
	}
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns {current_count, ttl_remaining}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter counts requests in Redis when a client is configured and falls back
// to a per-key token bucket in process memory otherwise.
type RateLimiter struct {
	client *goredis.Client
	cfg    RateLimitConfig
	audit  *security.SecurityLogger

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func NewRateLimiter(client *goredis.Client, cfg RateLimitConfig, audit *security.SecurityLogger) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 1
	}
	return &RateLimiter{
		client:    client,
		cfg:       cfg,
		audit:     audit,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

// Middleware rejects requests over the budget with 429 and a Retry-After header.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.cfg.KeyPrefix + l.cfg.KeyFunc(c)

		var (
			allowed    bool
			remaining  int
			retryAfter time.Duration
		)
		if l.client != nil {
			count, ttl, err := l.checkRedis(c.Request.Context(), key)
			if err != nil {
				if l.cfg.FailClosed {
					l.logError(c, err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				allowed, remaining, retryAfter = l.checkMemory(key, time.Now())
			} else {
				allowed = count <= l.cfg.Limit
				remaining = max(l.cfg.Limit-count, 0)
				retryAfter = ttl
			}
		} else {
			allowed, remaining, retryAfter = l.checkMemory(key, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(max(int(retryAfter.Seconds()), 1)))
			l.audit.LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.Request.UserAgent(),
				c.GetString(response.RequestIDKey),
				c.FullPath(),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) checkRedis(ctx context.Context, key string) (int, time.Duration, error) {
	ttlSeconds := int(l.cfg.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	res, err := rateLimitScript.Run(ctx, l.client, []string{key}, ttlSeconds).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(res) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format")
	}
	return int(res[0]), time.Duration(res[1]) * time.Second, nil
}

// checkMemory spends one token from the key's bucket. The bucket holds Limit tokens
// and refills one every Window/Limit.
func (l *RateLimiter) checkMemory(key string, now time.Time) (bool, int, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.cfg.Window {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.cfg.Window {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		every := l.cfg.Window / time.Duration(l.cfg.Limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), l.cfg.Limit)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	if !v.limiter.AllowN(now, 1) {
		return false, 0, l.cfg.Window / time.Duration(l.cfg.Limit)
	}
	return true, int(v.limiter.TokensAt(now)), 0
}

func (l *RateLimiter) logError(c *gin.Context, err error) {
	l.audit.Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		RequestID:   c.GetString(response.RequestIDKey),
		Details: map[string]interface{}{
			"error_type": "redis_error",
			"error":      err.Error(),
		},
	})
}
