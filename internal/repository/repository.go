// Package repository holds the persistence interfaces used by services and
// their GORM implementations.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserMatch narrows users by case-insensitive substring. Empty fields match all.
type UserMatch struct {
	Name string
	City string
}

type UserRepository interface {
	// Create inserts the user and, when worker is non-nil, its worker row in one transaction.
	Create(ctx context.Context, user *models.User, worker *models.Worker) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	SetOTP(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error
	MarkMobileVerified(ctx context.Context, id uuid.UUID) error
	FindMatching(ctx context.Context, ids []uuid.UUID, m UserMatch) ([]models.User, error)
}

// WorkerFilter is the worker-side half of search. Nil and empty fields do not filter.
type WorkerFilter struct {
	Category        string
	Skills          []string
	LanguagesSpoken []string
	MinExperience   *int
	MinRate         *float64
	MaxRate         *float64
}

type WorkerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Worker, error)
	// Update writes fields in a single statement and returns the updated row.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Worker, error)
	Search(ctx context.Context, f WorkerFilter) ([]models.Worker, error)
	ListByStage(ctx context.Context, stage verification.Stage, limit, offset int) ([]models.Worker, int64, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.Service, error)
	// FindOwned returns ErrNotFound both for a missing service and for one owned by another worker.
	FindOwned(ctx context.Context, id, workerID uuid.UUID) (*models.Service, error)
	UpdateOwned(ctx context.Context, id, workerID uuid.UUID, fields map[string]any) (*models.Service, error)
	DeleteOwned(ctx context.Context, id, workerID uuid.UUID) error
}

type VerificationRepository interface {
	Create(ctx context.Context, v *models.Verification) error
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.Verification, error)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// metacharacters in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
