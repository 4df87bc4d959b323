package service

import (
	"context"
	"fmt"
	"time"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
)

// transitions lists the statuses each status may move to
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:   {domain.BookingConfirmed, domain.BookingCancelled},
	domain.BookingConfirmed: {domain.BookingCompleted, domain.BookingCancelled},
}

type bookingService struct {
	repo     repository.BookingRepository
	vehicles VehicleService
	pricing  PricingService
	cache    cache.Cache
	logger   *logger.Logger
}

// NewBookingService creates a booking service. Vehicles and fares are read
// through their own services so they come from the cache when warm.
func NewBookingService(
	repo repository.BookingRepository,
	vehicles VehicleService,
	pricing PricingService,
	c cache.Cache,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		vehicles: vehicles,
		pricing:  pricing,
		cache:    c,
		logger:   logger,
	}
}

func (s *bookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return cache.WithCache(ctx, s.cache, cache.BookingKey(id), cache.TTLMedium, func(ctx context.Context) (*domain.Booking, error) {
		booking, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "booking")
		}
		return booking, nil
	})
}

func (s *bookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if !req.PickupAt.After(time.Now()) {
		return nil, domain.NewValidationError("pickup time must be in the future")
	}

	category := domain.CategoryStandard
	if req.VehicleID != nil {
		vehicle, err := s.vehicles.Get(ctx, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		if !vehicle.Available {
			return nil, domain.NewConflictError("vehicle is not available")
		}
		if vehicle.Seats < req.Passengers {
			return nil, domain.NewValidationError(fmt.Sprintf("vehicle seats %d passengers at most", vehicle.Seats))
		}
		category = vehicle.Category
	}

	rules, err := s.pricing.Rules(ctx)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ClientID:   req.ClientID,
		VehicleID:  req.VehicleID,
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		PickupAt:   req.PickupAt,
		Passengers: req.Passengers,
		Status:     domain.BookingPending,
		PriceCents: quote(rules, category),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		s.logger.Errorw("Failed to create booking", "client_id", req.ClientID, "error", err)
		return nil, err
	}

	s.cache.Delete(ctx, cache.UserBookingsKey(booking.ClientID))

	s.logger.Infow("Booking created",
		"booking_id", booking.ID,
		"client_id", booking.ClientID,
		"price_cents", booking.PriceCents,
	)
	return booking, nil
}

// UpdateStatus checks the transition against the stored booking, not a
// cached copy, then drops the booking and its owner's list
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if !canTransition(current.Status, status) {
		return nil, domain.NewConflictError(fmt.Sprintf("cannot move booking from %s to %s", current.Status, status))
	}

	booking, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, notFound(err, "booking")
	}

	s.cache.Delete(ctx, cache.BookingKey(id))
	s.cache.Delete(ctx, cache.UserBookingsKey(booking.ClientID))

	s.logger.Infow("Booking status updated", "booking_id", id, "from", current.Status, "to", status)
	return booking, nil
}

func canTransition(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
