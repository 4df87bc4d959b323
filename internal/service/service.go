package service

import (
	"context"
	"errors"

	"booking-platform/internal/domain"
)

// Every read below is served through cache.WithCache with a TTL tier picked
// for how often the data changes. Every write persists first and then drops
// the affected cache entries before returning.

// UserService exposes user accounts and the views derived from them
type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UserProfile, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
}

// SessionService issues and resolves login sessions
type SessionService interface {
	Create(ctx context.Context, userID string) (*domain.Session, error)

	// Resolve returns ErrSessionExpired for sessions past their expiry
	Resolve(ctx context.Context, token string) (*domain.Session, error)

	Revoke(ctx context.Context, token string) error

	// PurgeExpired deletes expired sessions from the store
	PurgeExpired(ctx context.Context) (int64, error)
}

// VehicleService manages the fleet
type VehicleService interface {
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
	Upsert(ctx context.Context, id string, req *domain.UpsertVehicleRequest) (*domain.Vehicle, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

// BookingService manages ride reservations
type BookingService interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
}

// PricingService exposes the fare table
type PricingService interface {
	Rules(ctx context.Context) ([]domain.PricingRule, error)
	ReplaceRules(ctx context.Context, rules []domain.PricingRule) error
}

// BlogService serves editorial content
type BlogService interface {
	// GetPost only returns published posts
	GetPost(ctx context.Context, slug string) (*domain.BlogPost, error)
	ListPublished(ctx context.Context) ([]domain.BlogPost, error)
	SavePost(ctx context.Context, req *domain.SavePostRequest) (*domain.BlogPost, error)
}

// SystemConfigService exposes platform-wide settings
type SystemConfigService interface {
	Get(ctx context.Context) (domain.SystemConfig, error)
	Update(ctx context.Context, settings map[string]string) (domain.SystemConfig, error)
}

// notFound turns a repository ErrNotFound into a 404 naming the resource
func notFound(err error, resource string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(resource)
	}
	return err
}
