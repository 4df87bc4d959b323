package service

import (
	"context"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
	"booking-platform/pkg/validator"
)

type vehicleService struct {
	repo   repository.VehicleRepository
	cache  cache.Cache
	logger *logger.Logger
}

// NewVehicleService creates a vehicle service with dependencies injected
func NewVehicleService(repo repository.VehicleRepository, c cache.Cache, logger *logger.Logger) VehicleService {
	return &vehicleService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (s *vehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	return cache.WithCache(ctx, s.cache, cache.VehicleKey(id), cache.TTLLong, func(ctx context.Context) (*domain.Vehicle, error) {
		vehicle, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "vehicle")
		}
		return vehicle, nil
	})
}

// ListAvailable uses the short tier, availability flips often
func (s *vehicleService) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	return cache.WithCache(ctx, s.cache, cache.AvailableVehiclesKey(), cache.TTLShort, s.repo.ListAvailable)
}

// Upsert creates a vehicle when id is empty, otherwise replaces the existing one
func (s *vehicleService) Upsert(ctx context.Context, id string, req *domain.UpsertVehicleRequest) (*domain.Vehicle, error) {
	plate := validator.NormalizePlate(req.Plate)
	if err := validator.ValidatePlate(plate); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	vehicle := &domain.Vehicle{
		DriverID:  req.DriverID,
		Plate:     plate,
		Model:     req.Model,
		Seats:     req.Seats,
		Category:  req.Category,
		Available: true,
	}

	if id != "" {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "vehicle")
		}
		vehicle.ID = existing.ID
		vehicle.Available = existing.Available
		vehicle.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Save(ctx, vehicle); err != nil {
		s.logger.Errorw("Failed to save vehicle", "plate", plate, "error", err)
		return nil, err
	}

	s.evict(ctx, vehicle.ID)
	s.logger.Infow("Vehicle saved", "vehicle_id", vehicle.ID, "plate", plate)
	return vehicle, nil
}

func (s *vehicleService) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return notFound(err, "vehicle")
	}
	s.evict(ctx, id)
	return nil
}

func (s *vehicleService) evict(ctx context.Context, id string) {
	s.cache.Delete(ctx, cache.VehicleKey(id))
	s.cache.Delete(ctx, cache.AvailableVehiclesKey())
}
