package domain

import "time"

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Bio       string `json:"bio" binding:"max=2000"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
	City      string `json:"city" binding:"max=120"`
	Language  string `json:"language" binding:"omitempty,len=2"`
}

// CreateSessionRequest asks for a new session token for a user
type CreateSessionRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// UpsertVehicleRequest creates or updates a vehicle
type UpsertVehicleRequest struct {
	DriverID string          `json:"driver_id" binding:"required,uuid"`
	Plate    string          `json:"plate" binding:"required,max=16"`
	Model    string          `json:"model" binding:"max=120"`
	Seats    int             `json:"seats" binding:"required,min=1,max=16"`
	Category VehicleCategory `json:"category" binding:"required,oneof=standard comfort van"`
}

// SetAvailabilityRequest toggles whether a vehicle can be booked
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// CreateBookingRequest reserves a ride
type CreateBookingRequest struct {
	ClientID   string    `json:"client_id" binding:"required,uuid"`
	VehicleID  *string   `json:"vehicle_id,omitempty" binding:"omitempty,uuid"`
	Pickup     string    `json:"pickup" binding:"required,max=255"`
	Dropoff    string    `json:"dropoff" binding:"required,max=255"`
	PickupAt   time.Time `json:"pickup_at" binding:"required"`
	Passengers int       `json:"passengers" binding:"required,min=1,max=16"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// SavePostRequest creates or replaces a blog post by slug
type SavePostRequest struct {
	Slug      string `json:"slug" binding:"required,max=160"`
	Title     string `json:"title" binding:"required,max=255"`
	Summary   string `json:"summary" binding:"max=512"`
	Body      string `json:"body" binding:"required"`
	AuthorID  string `json:"author_id" binding:"required,uuid"`
	Published bool   `json:"published"`
}

// UpdateConfigRequest upserts platform settings
type UpdateConfigRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1"`
}

// InvalidateRequest drops every cached key matching a pattern
type InvalidateRequest struct {
	Pattern string `json:"pattern" binding:"required"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Cache     string    `json:"cache"`
	Timestamp time.Time `json:"timestamp"`
}

// CacheStatusResponse describes the cache connection for admins
type CacheStatusResponse struct {
	Connected bool   `json:"connected"`
	State     string `json:"state"`
	Prefix    string `json:"prefix"`
}
