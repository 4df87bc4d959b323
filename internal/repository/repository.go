package repository

import (
	"context"

	"booking-platform/internal/domain"
)

// These interfaces are the system of record behind the cache. Services only
// depend on them, so PostgreSQL can be swapped without touching business logic.

// UserRepository defines data access for users and their profiles
type UserRepository interface {
	// FindByID retrieves a user, ErrNotFound if absent
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindProfile retrieves a user's profile, ErrNotFound if absent
	FindProfile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// SaveProfile inserts or replaces the profile row
	SaveProfile(ctx context.Context, profile *domain.UserProfile) error
}

// SessionRepository stores login sessions
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions (cleanup job)
	DeleteExpired(ctx context.Context) (int64, error)
}

// VehicleRepository stores the fleet
type VehicleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
	Save(ctx context.Context, vehicle *domain.Vehicle) error

	// SetAvailability flips the available flag, ErrNotFound if absent
	SetAvailability(ctx context.Context, id string, available bool) error
}

// BookingRepository stores bookings
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error)

	// UpdateStatus changes the status and returns the updated booking
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
}

// PricingRepository stores the fare table
type PricingRepository interface {
	ListActive(ctx context.Context) ([]domain.PricingRule, error)

	// ReplaceAll swaps the whole table in one transaction
	ReplaceAll(ctx context.Context, rules []domain.PricingRule) error
}

// BlogRepository stores blog posts
type BlogRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	ListPublished(ctx context.Context) ([]domain.BlogPost, error)

	// SaveBySlug inserts a post or updates the one with the same slug
	SaveBySlug(ctx context.Context, post *domain.BlogPost) error
}

// SystemConfigRepository stores platform settings
type SystemConfigRepository interface {
	Load(ctx context.Context) (domain.SystemConfig, error)
	Upsert(ctx context.Context, settings map[string]string) error
}
