package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// UserHandler handles HTTP requests for users and their profiles
type UserHandler struct {
	service service.UserService
	logger  *logger.Logger
}

// NewUserHandler creates a new user handler with dependencies
func NewUserHandler(service service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetProfile handles GET /api/v1/users/:id/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/users/:id/profile
// Only the user themselves or an admin may edit a profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	if !canActFor(c, id) {
		abortWithError(c, http.StatusForbidden, "forbidden", "Cannot edit another user's profile")
		return
	}

	var req domain.UpdateProfileRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListBookings handles GET /api/v1/users/:id/bookings
func (h *UserHandler) ListBookings(c *gin.Context) {
	id := c.Param("id")
	if !canActFor(c, id) {
		abortWithError(c, http.StatusForbidden, "forbidden", "Cannot list another user's bookings")
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}
