package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/google/uuid"
)

// ErrServiceNotFound covers both a missing service and one owned by another worker.
var ErrServiceNotFound = apperr.NotFound("Service not found")

// OfferingService manages the services a worker lists.
type OfferingService struct {
	workers  repository.WorkerRepository
	services repository.ServiceRepository
}

func NewOfferingService(workers repository.WorkerRepository, services repository.ServiceRepository) *OfferingService {
	return &OfferingService{workers: workers, services: services}
}

func (s *OfferingService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateServiceRequest) (*models.Service, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:          uuid.New(),
		WorkerID:    w.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		HourlyRate:  req.HourlyRate,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, apperr.Internal("Failed to add service", err)
	}
	return svc, nil
}

func (s *OfferingService) List(ctx context.Context, userID uuid.UUID) ([]models.Service, error) {
	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return nil, err
	}
	services, err := s.services.ListByWorker(ctx, w.ID)
	if err != nil {
		return nil, apperr.Internal("Failed to list services", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

func (s *OfferingService) Update(ctx context.Context, userID, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*models.Service, error) {
	fields, err := serviceFields(req)
	if err != nil {
		return nil, err
	}
	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return nil, err
	}

	var svc *models.Service
	if len(fields) == 0 {
		svc, err = s.services.FindOwned(ctx, serviceID, w.ID)
	} else {
		svc, err = s.services.UpdateOwned(ctx, serviceID, w.ID, fields)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, apperr.Internal("Failed to update service", err)
	}
	return svc, nil
}

func (s *OfferingService) Delete(ctx context.Context, userID, serviceID uuid.UUID) error {
	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return err
	}
	err = s.services.DeleteOwned(ctx, serviceID, w.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrServiceNotFound
	}
	if err != nil {
		return apperr.Internal("Failed to delete service", err)
	}
	return nil
}

func serviceFields(req *dto.UpdateServiceRequest) (map[string]any, error) {
	fields := make(map[string]any)
	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		if name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Category.Set {
		category := strings.TrimSpace(req.Category.Value)
		if category == "" {
			return nil, apperr.Validation("category cannot be empty")
		}
		fields["category"] = category
	}
	if req.Description.Set {
		fields["description"] = strings.TrimSpace(req.Description.Value)
	}
	if req.HourlyRate.Set {
		if req.HourlyRate.Null || req.HourlyRate.Value < 0 {
			return nil, apperr.Validation("hourlyRate must be a number of at least 0")
		}
		fields["hourly_rate"] = req.HourlyRate.Value
	}
	return fields, nil
}
