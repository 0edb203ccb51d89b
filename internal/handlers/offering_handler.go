package handlers

import (
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/services"
	"github.com/gofiber/fiber/v2"
)

// OfferingHandler serves a worker's own service listings.
type OfferingHandler struct {
	offeringService *services.OfferingService
}

func NewOfferingHandler(offeringService *services.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringService: offeringService}
}

func (h *OfferingHandler) Create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateServiceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	svc, err := h.offeringService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Service added successfully", "service": svc})
}

func (h *OfferingHandler) List(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	list, err := h.offeringService.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "services": list})
}

func (h *OfferingHandler) Update(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	serviceID, err := pathUUID(c, "serviceId", "Invalid service id")
	if err != nil {
		return err
	}
	var req dto.UpdateServiceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	svc, err := h.offeringService.Update(c.UserContext(), userID, serviceID, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Service updated successfully", "service": svc})
}

func (h *OfferingHandler) Delete(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	serviceID, err := pathUUID(c, "serviceId", "Invalid service id")
	if err != nil {
		return err
	}
	if err := h.offeringService.Delete(c.UserContext(), userID, serviceID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Service deleted successfully"})
}

// Categories lists the categories a worker can pick.
func Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": models.Categories()})
}
