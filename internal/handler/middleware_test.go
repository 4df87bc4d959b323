package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"booking-platform/internal/config"
	"booking-platform/internal/domain"
	"booking-platform/pkg/logger"
)

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", okHandler)
	return r
}

func TestRateLimit_SharedCounter(t *testing.T) {
	c, mr := newTestCache(t)
	r := rateLimitedRouter(NewRateLimiter(c, 2, logger.NewNop()))

	w := performRequest(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	key := "test:rate_limit:ip:192.0.2.1"
	assert.Equal(t, time.Minute, mr.TTL(key))

	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/ping", nil).Code)

	w = performRequest(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limit_exceeded", decodeError(t, w).Error)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	// a fresh window starts once the counter expires
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/ping", nil).Code)
}

func TestRateLimit_CounterWithoutExpiryRecovers(t *testing.T) {
	c, mr := newTestCache(t)
	r := rateLimitedRouter(NewRateLimiter(c, 2, logger.NewNop()))

	// over the limit and left without a TTL by an earlier failed write
	key := "test:rate_limit:ip:192.0.2.1"
	require.NoError(t, mr.Set(key, "5"))

	assert.Equal(t, http.StatusTooManyRequests, performRequest(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(24 * time.Hour)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/ping", nil).Code)
}

func TestRateLimit_FallsBackToLocalLimiter(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.Close())

	r := rateLimitedRouter(NewRateLimiter(c, 2, logger.NewNop()))

	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, performRequest(r, http.MethodGet, "/ping", nil).Code)
	assert.False(t, mr.Exists("test:rate_limit:ip:192.0.2.1"))
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware("s3cret"), okHandler)

	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/admin", nil, "Authorization", "Bearer nope").Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/admin", nil, "Authorization", "Bearer s3cret").Code)

	disabled := gin.New()
	disabled.GET("/admin", AdminAuthMiddleware(""), okHandler)
	assert.Equal(t, http.StatusNotFound, performRequest(disabled, http.MethodGet, "/admin", nil, "Authorization", "Bearer ").Code)
}

func TestSessionAuthMiddleware(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Resolve", mock.Anything, "live").Return(&domain.Session{Token: "live", UserID: "u1", Role: domain.RoleClient}, nil)
	sessions.On("Resolve", mock.Anything, "old").Return(nil, domain.ErrSessionExpired)

	r := gin.New()
	r.GET("/me", SessionAuthMiddleware(sessions, logger.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, currentSession(c).UserID)
	})

	w := performRequest(r, http.MethodGet, "/me", nil, "Authorization", "Bearer live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	w = performRequest(r, http.MethodGet, "/me", nil, "Authorization", "Bearer old")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "session_expired", decodeError(t, w).Error)

	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/me", nil).Code)
}

func TestRequireRole(t *testing.T) {
	build := func(session *domain.Session) *gin.Engine {
		r := gin.New()
		r.GET("/fleet", withSession(session), RequireRole(domain.RoleDriver, domain.RoleAdmin), okHandler)
		return r
	}

	assert.Equal(t, http.StatusOK, performRequest(build(&domain.Session{Role: domain.RoleDriver}), http.MethodGet, "/fleet", nil).Code)
	assert.Equal(t, http.StatusOK, performRequest(build(&domain.Session{Role: domain.RoleAdmin}), http.MethodGet, "/fleet", nil).Code)
	assert.Equal(t, http.StatusForbidden, performRequest(build(&domain.Session{Role: domain.RoleClient}), http.MethodGet, "/fleet", nil).Code)
	assert.Equal(t, http.StatusForbidden, performRequest(build(nil), http.MethodGet, "/fleet", nil).Code)
}

func TestCORSMiddleware(t *testing.T) {
	cfg := &config.Config{Environment: "production", AllowedOrigins: []string{"https://app.example.com"}}
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/x", okHandler)

	w := performRequest(r, http.MethodGet, "/x", nil, "Origin", "https://app.example.com")
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = performRequest(r, http.MethodGet, "/x", nil, "Origin", "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = performRequest(r, http.MethodOptions, "/x", nil, "Origin", "https://app.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware())
	r.GET("/x", okHandler)

	w := performRequest(r, http.MethodGet, "/x", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestTimeoutMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TimeoutMiddleware(50 * time.Millisecond))
	r.GET("/x", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/x", nil).Code)
}
