package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
)

type systemConfigRepository struct {
	db *gorm.DB
}

// NewSystemConfigRepository creates a new PostgreSQL settings repository
func NewSystemConfigRepository(db *gorm.DB) repository.SystemConfigRepository {
	return &systemConfigRepository{db: db}
}

func (r *systemConfigRepository) Load(ctx context.Context) (domain.SystemConfig, error) {
	var rows []domain.SystemSetting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	cfg := make(domain.SystemConfig, len(rows))
	for _, row := range rows {
		cfg[row.Key] = row.Value
	}
	return cfg, nil
}

func (r *systemConfigRepository) Upsert(ctx context.Context, settings map[string]string) error {
	rows := make([]domain.SystemSetting, 0, len(settings))
	for k, v := range settings {
		rows = append(rows, domain.SystemSetting{Key: k, Value: v})
	}
	if len(rows) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows)
	return translate(result.Error)
}
