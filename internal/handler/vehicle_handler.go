package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// VehicleHandler handles HTTP requests for the fleet
type VehicleHandler struct {
	service service.VehicleService
	logger  *logger.Logger
}

// NewVehicleHandler creates a new vehicle handler with dependencies
func NewVehicleHandler(service service.VehicleService, logger *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		logger:  logger,
	}
}

// Get handles GET /api/v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// ListAvailable handles GET /api/v1/vehicles/available
func (h *VehicleHandler) ListAvailable(c *gin.Context) {
	vehicles, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "count": len(vehicles)})
}

// Create handles POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	h.upsert(c, "", http.StatusCreated)
}

// Update handles PUT /api/v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	h.upsert(c, c.Param("id"), http.StatusOK)
}

func (h *VehicleHandler) upsert(c *gin.Context, id string, status int) {
	var req domain.UpsertVehicleRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if !canActFor(c, req.DriverID) {
		abortWithError(c, http.StatusForbidden, "forbidden", "Drivers may only manage their own vehicles")
		return
	}

	vehicle, err := h.service.Upsert(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(status, vehicle)
}

// SetAvailability handles PATCH /api/v1/vehicles/:id/availability
func (h *VehicleHandler) SetAvailability(c *gin.Context) {
	var req domain.SetAvailabilityRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	id := c.Param("id")
	if err := h.service.SetAvailability(c.Request.Context(), id, req.Available); err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "available": req.Available})
}
