package repository

import (
	"context"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormVerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *GormVerificationRepository {
	return &GormVerificationRepository{db: db}
}

func (r *GormVerificationRepository) Create(ctx context.Context, v *models.Verification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *GormVerificationRepository) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.Verification, error) {
	var rows []models.Verification
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("reviewed_at DESC").
		Find(&rows).Error
	return rows, err
}
