package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// ContentHandler serves the read-mostly catalogue: fares, blog and settings
type ContentHandler struct {
	pricing  service.PricingService
	blog     service.BlogService
	settings service.SystemConfigService
	logger   *logger.Logger
}

// NewContentHandler creates a new content handler with dependencies
func NewContentHandler(
	pricing service.PricingService,
	blog service.BlogService,
	settings service.SystemConfigService,
	logger *logger.Logger,
) *ContentHandler {
	return &ContentHandler{
		pricing:  pricing,
		blog:     blog,
		settings: settings,
		logger:   logger,
	}
}

// PricingRules handles GET /api/v1/pricing
func (h *ContentHandler) PricingRules(c *gin.Context) {
	rules, err := h.pricing.Rules(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// ReplacePricingRules handles PUT /admin/pricing
func (h *ContentHandler) ReplacePricingRules(c *gin.Context) {
	var rules []domain.PricingRule
	if !bindJSON(c, h.logger, &rules) {
		return
	}

	if err := h.pricing.ReplaceRules(c.Request.Context(), rules); err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// ListPosts handles GET /api/v1/blog
func (h *ContentHandler) ListPosts(c *gin.Context) {
	posts, err := h.blog.ListPublished(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetPost handles GET /api/v1/blog/:slug
func (h *ContentHandler) GetPost(c *gin.Context) {
	post, err := h.blog.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// SavePost handles PUT /api/v1/blog
func (h *ContentHandler) SavePost(c *gin.Context) {
	var req domain.SavePostRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	post, err := h.blog.SavePost(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetConfig handles GET /api/v1/config
func (h *ContentHandler) GetConfig(c *gin.Context) {
	cfg, err := h.settings.Get(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": cfg})
}

// UpdateConfig handles PUT /admin/config
func (h *ContentHandler) UpdateConfig(c *gin.Context) {
	var req domain.UpdateConfigRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	cfg, err := h.settings.Update(c.Request.Context(), req.Settings)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": cfg})
}
