package repository

import (
	"context"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormWorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

func (r *GormWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	var w models.Worker
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *GormWorkerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Worker, error) {
	var w models.Worker
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *GormWorkerRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Worker, error) {
	var w models.Worker
	result := r.db.WithContext(ctx).Model(&w).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (r *GormWorkerRepository) Search(ctx context.Context, f WorkerFilter) ([]models.Worker, error) {
	q := r.db.WithContext(ctx).Model(&models.Worker{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if len(f.Skills) > 0 {
		q = q.Where("skills && ?", pq.Array(f.Skills))
	}
	if len(f.LanguagesSpoken) > 0 {
		q = q.Where("languages_spoken && ?", pq.Array(f.LanguagesSpoken))
	}
	if f.MinExperience != nil {
		q = q.Where("experience >= ?", *f.MinExperience)
	}
	if f.MinRate != nil {
		q = q.Where("hourly_rate >= ?", *f.MinRate)
	}
	if f.MaxRate != nil {
		q = q.Where("hourly_rate <= ?", *f.MaxRate)
	}

	var workers []models.Worker
	if err := q.Order("rating DESC").Order("created_at ASC").Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *GormWorkerRepository) ListByStage(ctx context.Context, stage verification.Stage, limit, offset int) ([]models.Worker, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Worker{})
	if stage != "" {
		q = q.Where("verification_stage = ?", stage)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workers []models.Worker
	if err := q.Order("updated_at ASC").Limit(limit).Offset(offset).Find(&workers).Error; err != nil {
		return nil, 0, err
	}
	return workers, total, nil
}
