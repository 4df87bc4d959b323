package postgres

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new PostgreSQL booking repository
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return translate(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// ListByClient returns a client's bookings, most recent pickup first
func (r *bookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("pickup_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

// UpdateStatus uses a single UPDATE so concurrent transitions do not race on a stale read
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}
