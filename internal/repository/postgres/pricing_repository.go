package postgres

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
)

type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a new PostgreSQL pricing repository
func NewPricingRepository(db *gorm.DB) repository.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) ListActive(ctx context.Context) ([]domain.PricingRule, error) {
	var rules []domain.PricingRule
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("category").
		Find(&rules).Error
	if err != nil {
		return nil, translate(err)
	}
	return rules, nil
}

func (r *pricingRepository) ReplaceAll(ctx context.Context, rules []domain.PricingRule) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.PricingRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
	return translate(err)
}
