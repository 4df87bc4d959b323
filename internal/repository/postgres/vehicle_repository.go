package postgres

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
)

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository
func NewVehicleRepository(db *gorm.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, translate(err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at").
		Find(&vehicles).Error
	if err != nil {
		return nil, translate(err)
	}
	return vehicles, nil
}

// Save inserts new vehicles and updates existing ones by primary key
func (r *vehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.ID == "" {
		return translate(r.db.WithContext(ctx).Create(vehicle).Error)
	}
	return translate(r.db.WithContext(ctx).Save(vehicle).Error)
}

func (r *vehicleRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", id).
		Update("available", available)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
