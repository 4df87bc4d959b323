package service

import (
	"context"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
	"booking-platform/pkg/validator"
)

type userService struct {
	users    repository.UserRepository
	bookings repository.BookingRepository
	cache    cache.Cache
	logger   *logger.Logger
}

// NewUserService creates a user service with dependencies injected
func NewUserService(
	users repository.UserRepository,
	bookings repository.BookingRepository,
	c cache.Cache,
	logger *logger.Logger,
) UserService {
	return &userService{
		users:    users,
		bookings: bookings,
		cache:    c,
		logger:   logger,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return cache.WithCache(ctx, s.cache, cache.UserKey(id), cache.TTLLong, func(ctx context.Context) (*domain.User, error) {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "user")
		}
		return user, nil
	})
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return cache.WithCache(ctx, s.cache, cache.UserProfileKey(userID), cache.TTLMedium, func(ctx context.Context) (*domain.UserProfile, error) {
		profile, err := s.users.FindProfile(ctx, userID)
		if err != nil {
			return nil, notFound(err, "profile")
		}
		return profile, nil
	})
}

// UpdateProfile saves the profile, then drops the user entry and every view
// derived from it (profile, bookings)
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	if err := validator.ValidateAvatarURL(req.AvatarURL); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, "user")
	}

	profile := &domain.UserProfile{
		UserID:    userID,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		City:      req.City,
		Language:  req.Language,
	}
	if err := s.users.SaveProfile(ctx, profile); err != nil {
		s.logger.Errorw("Failed to save profile", "user_id", userID, "error", err)
		return nil, err
	}

	s.cache.Delete(ctx, cache.UserKey(userID))
	removed := s.cache.InvalidatePattern(ctx, cache.UserViewsPattern(userID))

	s.logger.Infow("Profile updated", "user_id", userID, "invalidated", removed)
	return profile, nil
}

func (s *userService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return cache.WithCache(ctx, s.cache, cache.UserBookingsKey(userID), cache.TTLShort, func(ctx context.Context) ([]domain.Booking, error) {
		return s.bookings.ListByClient(ctx, userID)
	})
}
