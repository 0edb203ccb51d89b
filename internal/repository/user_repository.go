package repository

import (
	"context"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User, worker *models.Worker) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if worker == nil {
			return nil
		}
		worker.UserID = user.ID
		return tx.Create(worker).Error
	}))
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *GormUserRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

func (r *GormUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormUserRepository) SetOTP(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error {
	return r.updateOne(ctx, id, map[string]any{
		"otp_hash":       hash,
		"otp_expires_at": expiresAt,
	})
}

func (r *GormUserRepository) MarkMobileVerified(ctx context.Context, id uuid.UUID) error {
	return r.updateOne(ctx, id, map[string]any{
		"is_mobile_verified": true,
		"otp_hash":           nil,
		"otp_expires_at":     nil,
	})
}

func (r *GormUserRepository) updateOne(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) FindMatching(ctx context.Context, ids []uuid.UUID, m UserMatch) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).Where("id IN ?", ids)
	if m.Name != "" {
		q = q.Where("full_name ILIKE ?", containsPattern(m.Name))
	}
	if m.City != "" {
		q = q.Where("address_city ILIKE ?", containsPattern(m.City))
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
