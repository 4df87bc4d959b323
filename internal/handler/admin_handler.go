package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
	"booking-platform/pkg/validator"
)

const (
	serviceName    = "booking-platform"
	serviceVersion = "1.0.0"
)

// CacheAdmin is the cache as seen by operators
type CacheAdmin interface {
	cache.Cache
	State() cache.State
	Prefix() string
}

// AdminHandler serves health and the operator cache surface
type AdminHandler struct {
	cache    CacheAdmin
	sessions service.SessionService
	pingDB   func(ctx context.Context) error
	logger   *logger.Logger
}

// NewAdminHandler creates a new admin handler. pingDB may be nil.
func NewAdminHandler(c CacheAdmin, sessions service.SessionService, pingDB func(ctx context.Context) error, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		cache:    c,
		sessions: sessions,
		pingDB:   pingDB,
		logger:   logger,
	}
}

// Health handles GET /health
// A lost cache only degrades the service; a lost database makes it unhealthy
func (h *AdminHandler) Health(c *gin.Context) {
	resp := domain.HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   serviceVersion,
		Cache:     h.cache.State().String(),
		Timestamp: time.Now().UTC(),
	}

	status := http.StatusOK
	if h.pingDB != nil {
		if err := h.pingDB(c.Request.Context()); err != nil {
			h.logger.Warnw("Database health check failed", "error", err)
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}
	if status == http.StatusOK && !h.cache.IsConnected() {
		resp.Status = "degraded"
	}

	c.JSON(status, resp)
}

// CacheStatus handles GET /admin/cache/status
func (h *AdminHandler) CacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, domain.CacheStatusResponse{
		Connected: h.cache.IsConnected(),
		State:     h.cache.State().String(),
		Prefix:    h.cache.Prefix(),
	})
}

// DeleteKey handles DELETE /admin/cache/keys/:key
func (h *AdminHandler) DeleteKey(c *gin.Context) {
	key := c.Param("key")
	deleted := h.cache.Delete(c.Request.Context(), key)

	h.logger.Infow("Cache key deleted by operator", "key", key, "ok", deleted)
	c.JSON(http.StatusOK, gin.H{"key": key, "deleted": deleted})
}

// Invalidate handles POST /admin/cache/invalidate
func (h *AdminHandler) Invalidate(c *gin.Context) {
	var req domain.InvalidateRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := validator.ValidateCachePattern(req.Pattern); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	removed := h.cache.InvalidatePattern(c.Request.Context(), req.Pattern)

	h.logger.Infow("Cache pattern invalidated by operator", "pattern", req.Pattern, "removed", removed)
	c.JSON(http.StatusOK, gin.H{"pattern": req.Pattern, "removed": removed})
}

// Flush handles POST /admin/cache/flush?confirm=true
// This wipes the whole store, other namespaces included
func (h *AdminHandler) Flush(c *gin.Context) {
	if c.Query("confirm") != "true" {
		abortWithError(c, http.StatusBadRequest, "confirmation_required", "Pass confirm=true to flush the entire cache")
		return
	}

	flushed := h.cache.FlushAll(c.Request.Context())
	h.logger.Warnw("Cache flushed by operator", "ok", flushed, "ip", c.ClientIP())

	status := http.StatusOK
	if !flushed {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"flushed": flushed})
}

// PurgeSessions handles POST /admin/sessions/purge
func (h *AdminHandler) PurgeSessions(c *gin.Context) {
	n, err := h.sessions.PurgeExpired(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": n})
}
