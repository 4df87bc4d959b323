package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// SessionHandler issues and revokes session tokens
type SessionHandler struct {
	service service.SessionService
	logger  *logger.Logger
}

// NewSessionHandler creates a new session handler with dependencies
func NewSessionHandler(service service.SessionService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /api/v1/sessions
// Credential checks happen upstream at the identity provider
func (h *SessionHandler) Create(c *gin.Context) {
	var req domain.CreateSessionRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	session, err := h.service.Create(c.Request.Context(), req.UserID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Current handles GET /api/v1/sessions/current
func (h *SessionHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}

// Revoke handles DELETE /api/v1/sessions/current
func (h *SessionHandler) Revoke(c *gin.Context) {
	session := currentSession(c)
	if err := h.service.Revoke(c.Request.Context(), session.Token); err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
