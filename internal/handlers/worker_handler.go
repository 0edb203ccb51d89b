package handlers

import (
	"strconv"
	"strings"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WorkerHandler struct {
	workerService *services.WorkerService
	searchService *services.SearchService
}

func NewWorkerHandler(workerService *services.WorkerService, searchService *services.SearchService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService, searchService: searchService}
}

func (h *WorkerHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	w, err := h.workerService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkerResponse{Success: true, Worker: w})
}

func (h *WorkerHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	w, err := h.workerService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkerResponse{Success: true, Message: "Profile updated successfully", Worker: w})
}

func (h *WorkerHandler) Search(c *fiber.Ctx) error {
	q, err := searchQuery(c)
	if err != nil {
		return err
	}
	results, err := h.searchService.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(results), "workers": results})
}

func searchQuery(c *fiber.Ctx) (*dto.WorkerSearchQuery, error) {
	q := &dto.WorkerSearchQuery{
		Name:            strings.TrimSpace(c.Query("name")),
		City:            strings.TrimSpace(c.Query("city")),
		Category:        strings.TrimSpace(c.Query("category")),
		Skills:          splitCSV(c.Query("skills")),
		LanguagesSpoken: splitCSV(c.Query("languagesSpoken")),
	}
	if q.Category != "" && !models.Category(q.Category).Valid() {
		return nil, apperr.Validation("Invalid category")
	}

	var err error
	if q.MinExperience, err = optionalInt(c, "experience"); err != nil {
		return nil, err
	}
	if q.MinPrice, err = optionalFloat(c, "minPrice"); err != nil {
		return nil, err
	}
	if q.MaxPrice, err = optionalFloat(c, "maxPrice"); err != nil {
		return nil, err
	}
	limit, err := optionalInt(c, "limit")
	if err != nil {
		return nil, err
	}
	if limit != nil {
		q.Limit = *limit
	}
	return q, nil
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, apperr.Validation(key + " must be a non-negative integer")
	}
	return &n, nil
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil, apperr.Validation(key + " must be a non-negative number")
	}
	return &f, nil
}
