package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-0123456789"

func init() {
	gin.SetMode(gin.TestMode)
}

func gatedRouter(tokens *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	gate := NewGate(tokens, "/sign-in", nil)
	r.GET("/dashboard/jobs", gate.Require(), func(c *gin.Context) {
		id := domain.UserIDFromContext(c.Request.Context())
		c.String(http.StatusOK, id)
	})
	return r
}

func TestGate(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	r := gatedRouter(tokens)

	t.Run("Should reject a request without a session cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/jobs", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"Authentication required"`)
	})

	t.Run("Should expose the caller identity to handlers", func(t *testing.T) {
		token, _, err := tokens.Issue("user-1", "a@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/dashboard/jobs", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("Should reject expired and tampered tokens", func(t *testing.T) {
		past := auth.NewTokenService(testSecret, time.Hour, auth.WithClock(func() time.Time {
			return time.Now().Add(-2 * time.Hour)
		}))
		expired, _, err := past.Issue("user-1", "a@example.com")
		require.NoError(t, err)

		for _, value := range []string{expired, "not-a-token", expired + "x"} {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/jobs", nil)
			req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: value})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid or expired session")
		}
	})

	t.Run("Should forbid a signed token without a subject", func(t *testing.T) {
		token, _, err := tokens.Issue("", "a@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/dashboard/jobs", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should redirect browser navigations to sign in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/jobs?tab=all", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/sign-in?next=%2Fdashboard%2Fjobs%3Ftab%3Dall", w.Header().Get("Location"))
	})
}

func limitedRouter(l *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:4242"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("Should throttle in memory when redis is not configured", func(t *testing.T) {
		r := limitedRouter(NewRateLimiter(nil, AuthRateLimitConfig(2, time.Minute), nil))

		assert.Equal(t, http.StatusNoContent, hit(r).Code)
		assert.Equal(t, http.StatusNoContent, hit(r).Code)

		w := hit(r)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Should count requests in redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		defer client.Close()

		r := limitedRouter(NewRateLimiter(client, AuthRateLimitConfig(2, time.Minute), nil))

		assert.Equal(t, http.StatusNoContent, hit(r).Code)
		assert.Equal(t, http.StatusNoContent, hit(r).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)
		assert.True(t, mr.Exists("rl:auth:203.0.113.7"))
	})

	t.Run("Should fail closed when redis errors on auth routes", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer client.Close()
		mr.Close()

		r := limitedRouter(NewRateLimiter(client, AuthRateLimitConfig(2, time.Minute), nil))
		assert.Equal(t, http.StatusServiceUnavailable, hit(r).Code)
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(nil))
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(apperror.Validation("invalid input", map[string]string{"title": "is required"}))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection reset"))
	})

	t.Run("Should render field errors in the envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validation", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"invalid input"`)
		assert.Contains(t, w.Body.String(), `"fields":{"title":"is required"}`)
		assert.Contains(t, w.Body.String(), `"request_id":"`+w.Header().Get(RequestIDHeader)+`"`)
	})

	t.Run("Should hide internal error details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
	})

	t.Run("Should reuse a well formed incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/validation", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}
