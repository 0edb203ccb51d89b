package services

import (
	"context"
	"errors"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrWorkerNotFound = apperr.NotFound("Worker not found")

type WorkerService struct {
	workers repository.WorkerRepository
}

func NewWorkerService(workers repository.WorkerRepository) *WorkerService {
	return &WorkerService{workers: workers}
}

func (s *WorkerService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Worker, error) {
	return workerByUser(ctx, s.workers, userID)
}

// UpdateProfile applies only the keys present in req. A present null, zero or
// empty value is written as such.
func (s *WorkerService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Worker, error) {
	fields, err := profileFields(req)
	if err != nil {
		return nil, err
	}
	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return w, nil
	}

	updated, err := s.workers.Update(ctx, w.ID, fields)
	if err != nil {
		return nil, apperr.Internal("Failed to update profile", err)
	}
	return updated, nil
}

func profileFields(req *dto.UpdateProfileRequest) (map[string]any, error) {
	fields := make(map[string]any)

	if req.Category.Set {
		c := req.Category.Value
		if req.Category.Null {
			c = models.CategoryNone
		}
		if !c.Valid() {
			return nil, apperr.Validation("category must be one of: Plumber, Electrician, Cleaner, Carpenter, Painter, Other, None")
		}
		fields[models.ColCategory] = string(c)
	}
	if req.Skills.Set {
		fields[models.ColSkills] = pq.StringArray(cleanList(req.Skills.Value))
	}
	if req.Experience.Set {
		if req.Experience.Value < 0 {
			return nil, apperr.Validation("experience must be at least 0")
		}
		fields[models.ColExperience] = req.Experience.Value
	}
	if req.HourlyRate.Set {
		if req.HourlyRate.Null {
			fields[models.ColHourlyRate] = nil
		} else if req.HourlyRate.Value < 0 {
			return nil, apperr.Validation("hourlyRate must be at least 0")
		} else {
			fields[models.ColHourlyRate] = req.HourlyRate.Value
		}
	}
	if req.Bio.Set {
		fields[models.ColBio] = req.Bio.Value
	}
	if req.LanguagesSpoken.Set {
		fields[models.ColLanguagesSpoken] = pq.StringArray(cleanList(req.LanguagesSpoken.Value))
	}
	return fields, nil
}

func workerByUser(ctx context.Context, workers repository.WorkerRepository, userID uuid.UUID) (*models.Worker, error) {
	w, err := workers.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, apperr.Internal("Failed to load worker", err)
	}
	return w, nil
}

func workerByID(ctx context.Context, workers repository.WorkerRepository, id uuid.UUID) (*models.Worker, error) {
	w, err := workers.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, apperr.Internal("Failed to load worker", err)
	}
	return w, nil
}
