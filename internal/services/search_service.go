package services

import (
	"context"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100
)

type SearchService struct {
	workers repository.WorkerRepository
	users   repository.UserRepository
}

func NewSearchService(workers repository.WorkerRepository, users repository.UserRepository) *SearchService {
	return &SearchService{workers: workers, users: users}
}

// Search filters workers on their own columns, then keeps only those whose
// user matches the name and city filters. Worker order (rating first) is kept.
func (s *SearchService) Search(ctx context.Context, q *dto.WorkerSearchQuery) ([]dto.WorkerSearchResult, error) {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, apperr.Validation("minPrice cannot be greater than maxPrice")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	workers, err := s.workers.Search(ctx, repository.WorkerFilter{
		Category:        q.Category,
		Skills:          cleanList(q.Skills),
		LanguagesSpoken: cleanList(q.LanguagesSpoken),
		MinExperience:   q.MinExperience,
		MinRate:         q.MinPrice,
		MaxRate:         q.MaxPrice,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to search workers", err)
	}
	results := make([]dto.WorkerSearchResult, 0, len(workers))
	if len(workers) == 0 {
		return results, nil
	}

	ids := make([]uuid.UUID, len(workers))
	for i := range workers {
		ids[i] = workers[i].UserID
	}
	users, err := s.users.FindMatching(ctx, ids, repository.UserMatch{Name: q.Name, City: q.City})
	if err != nil {
		return nil, apperr.Internal("Failed to search workers", err)
	}
	byID := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	for i := range workers {
		u, ok := byID[workers[i].UserID]
		if !ok {
			continue
		}
		results = append(results, dto.WorkerSearchResult{Worker: &workers[i], User: publicUser(u)})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func publicUser(u *models.User) dto.PublicUser {
	return dto.PublicUser{
		ID:           u.ID.String(),
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		ProfileImage: u.ProfileImage,
	}
}
