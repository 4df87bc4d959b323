package service

import (
	"context"
	"fmt"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
)

type pricingService struct {
	repo   repository.PricingRepository
	cache  cache.Cache
	logger *logger.Logger
}

// NewPricingService creates a pricing service with dependencies injected
func NewPricingService(repo repository.PricingRepository, c cache.Cache, logger *logger.Logger) PricingService {
	return &pricingService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (s *pricingService) Rules(ctx context.Context) ([]domain.PricingRule, error) {
	return cache.WithCache(ctx, s.cache, cache.PricingRulesKey(), cache.TTLDay, s.repo.ListActive)
}

// ReplaceRules swaps the fare table; at most one rule per category
func (s *pricingService) ReplaceRules(ctx context.Context, rules []domain.PricingRule) error {
	seen := make(map[domain.VehicleCategory]bool, len(rules))
	for i := range rules {
		r := &rules[i]
		if seen[r.Category] {
			return domain.NewValidationError(fmt.Sprintf("duplicate rule for category %q", r.Category))
		}
		if r.BaseFareCents < 0 || r.PerKmCents < 0 || r.PerMinuteCents < 0 || r.MinimumFareCents < 0 {
			return domain.NewValidationError("fares cannot be negative")
		}
		seen[r.Category] = true
		r.ID = 0
	}

	if err := s.repo.ReplaceAll(ctx, rules); err != nil {
		s.logger.Errorw("Failed to replace pricing rules", "error", err)
		return err
	}

	s.cache.Delete(ctx, cache.PricingRulesKey())
	s.logger.Infow("Pricing rules replaced", "count", len(rules))
	return nil
}

// quote returns the flat fare for a category, 0 when no active rule exists
func quote(rules []domain.PricingRule, category domain.VehicleCategory) int64 {
	for _, r := range rules {
		if r.Category != category || !r.Active {
			continue
		}
		if r.BaseFareCents > r.MinimumFareCents {
			return r.BaseFareCents
		}
		return r.MinimumFareCents
	}
	return 0
}
