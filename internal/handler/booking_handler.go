package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// BookingHandler handles HTTP requests for bookings
type BookingHandler struct {
	service service.BookingService
	logger  *logger.Logger
}

// NewBookingHandler creates a new booking handler with dependencies
func NewBookingHandler(service service.BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req domain.CreateBookingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if !canActFor(c, req.ClientID) {
		abortWithError(c, http.StatusForbidden, "forbidden", "Cannot book on behalf of another client")
		return
	}

	booking, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// Get handles GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	if !canActFor(c, booking.ClientID) && !isDriver(c) {
		abortWithError(c, http.StatusForbidden, "forbidden", "Cannot view this booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req domain.UpdateBookingStatusRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func isDriver(c *gin.Context) bool {
	session := currentSession(c)
	return session != nil && session.Role == domain.RoleDriver
}
