package service

import (
	"context"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
	"booking-platform/pkg/validator"
)

type systemConfigService struct {
	repo   repository.SystemConfigRepository
	cache  cache.Cache
	logger *logger.Logger
}

// NewSystemConfigService creates a settings service with dependencies injected
func NewSystemConfigService(repo repository.SystemConfigRepository, c cache.Cache, logger *logger.Logger) SystemConfigService {
	return &systemConfigService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// Get uses the week tier; settings only change through Update
func (s *systemConfigService) Get(ctx context.Context) (domain.SystemConfig, error) {
	return cache.WithCache(ctx, s.cache, cache.SystemConfigKey(), cache.TTLWeek, s.repo.Load)
}

func (s *systemConfigService) Update(ctx context.Context, settings map[string]string) (domain.SystemConfig, error) {
	for key := range settings {
		if err := validator.ValidateSettingKey(key); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		s.logger.Errorw("Failed to update settings", "error", err)
		return nil, err
	}
	s.cache.Delete(ctx, cache.SystemConfigKey())

	s.logger.Infow("System config updated", "keys", len(settings))
	return s.Get(ctx)
}
