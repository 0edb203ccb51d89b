package repository

import (
	"context"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *GormServiceRepository) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&services).Error
	return services, err
}

func (r *GormServiceRepository) FindOwned(ctx context.Context, id, workerID uuid.UUID) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Where("id = ? AND worker_id = ?", id, workerID).First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *GormServiceRepository) UpdateOwned(ctx context.Context, id, workerID uuid.UUID, fields map[string]any) (*models.Service, error) {
	var s models.Service
	result := r.db.WithContext(ctx).Model(&s).
		Clauses(clause.Returning{}).
		Where("id = ? AND worker_id = ?", id, workerID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *GormServiceRepository) DeleteOwned(ctx context.Context, id, workerID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND worker_id = ?", id, workerID).Delete(&models.Service{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
