package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"booking-platform/internal/cache"
	"booking-platform/internal/config"
	"booking-platform/internal/domain"
	"booking-platform/internal/metrics"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

const sessionContextKey = "session"

// LoggerMiddleware logs HTTP requests with structured logging and records
// request metrics per route
func LoggerMiddleware(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequest(route, c.Request.Method, status, latency)

		log.Infow("HTTP request",
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"latency", latency,
			"user_agent", c.Request.UserAgent(),
			"error", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}

// CORSMiddleware handles Cross-Origin Resource Sharing
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Allow listed origins in production, all in development
		if origin != "" && (cfg.IsDevelopment() || allowed[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityHeadersMiddleware adds security-related headers
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Writer.Header().Set("Content-Security-Policy", "default-src 'self'")

		c.Next()
	}
}

// RateLimiter counts requests per client IP in the shared cache so every
// instance sees the same window. While the cache is unreachable it limits
// locally with a token bucket per IP.
type RateLimiter struct {
	cache  cache.Cache
	limit  int
	window time.Duration
	log    *logger.Logger

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerMinute per IP
func NewRateLimiter(c cache.Cache, requestsPerMinute int, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		cache:  c,
		limit:  requestsPerMinute,
		window: time.Minute,
		log:    log,
		local:  make(map[string]*rate.Limiter),
	}
}

// Middleware returns the gin handler
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		count, ok := rl.cache.IncrementWithTTL(c.Request.Context(), cache.RateLimitKey("ip:"+ip), 1, rl.window)
		if !ok {
			if !rl.allowLocal(ip) {
				rl.reject(c, ip)
				return
			}
			c.Next()
			return
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			rl.reject(c, ip)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allowLocal(ip string) bool {
	rl.mu.Lock()
	limiter, exists := rl.local[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit)
		rl.local[ip] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

func (rl *RateLimiter) reject(c *gin.Context, ip string) {
	rl.log.Debugw("Rate limit exceeded", "ip", ip)
	c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
	abortWithError(c, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests, please try again later")
}

// AdminAuthMiddleware guards operator endpoints with a static bearer token.
// An empty token disables the endpoints entirely.
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			abortWithError(c, http.StatusNotFound, "not_found", "endpoint not found")
			return
		}

		got := bearerToken(c)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "Valid admin token required")
			return
		}

		c.Next()
	}
}

// SessionAuthMiddleware resolves the bearer token into a session and stores
// it on the context
func SessionAuthMiddleware(sessions service.SessionService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "Session token required")
			return
		}

		session, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			handleError(c, log, err)
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireRole lets only sessions holding one of roles through
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		for _, r := range roles {
			if session != nil && session.Role == r {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, "forbidden", "Insufficient role")
	}
}

// TimeoutMiddleware sets a timeout for request processing
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func currentSession(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

// canActFor reports whether the session may act on userID's resources
func canActFor(c *gin.Context, userID string) bool {
	session := currentSession(c)
	return session != nil && (session.UserID == userID || session.Role == domain.RoleAdmin)
}
