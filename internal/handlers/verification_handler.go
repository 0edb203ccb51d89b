package handlers

import (
	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/services"
	"github.com/Dhaval523/WorkJunction/internal/storage"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxPageSize = 100

type VerificationHandler struct {
	verificationService *services.VerificationService
	policy              storage.Policy
}

func NewVerificationHandler(verificationService *services.VerificationService, policy storage.Policy) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService, policy: policy}
}

func (h *VerificationHandler) AcceptTerms(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	w, err := h.verificationService.AcceptTerms(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkerResponse{Success: true, Message: "Terms and conditions accepted", Worker: w})
}

func (h *VerificationHandler) UploadAadhar(c *fiber.Ctx) error {
	return h.upload(c, services.DocumentAadhar)
}

func (h *VerificationHandler) UploadPolice(c *fiber.Ctx) error {
	return h.upload(c, services.DocumentPolice)
}

func (h *VerificationHandler) UploadPhoto(c *fiber.Ctx) error {
	return h.upload(c, services.DocumentPhoto)
}

func (h *VerificationHandler) upload(c *fiber.Ctx, doc services.Document) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("No file uploaded")
	}
	file, err := storage.ReadMultipart(fh, h.policy)
	if err != nil {
		return err
	}

	w, url, err := h.verificationService.Submit(c.UserContext(), userID, doc, file)
	if err != nil {
		return err
	}
	return c.JSON(dto.UploadResponse{
		Success: true,
		Message: doc.SuccessMessage(),
		FileURL: url,
		Worker:  w,
	})
}

func (h *VerificationHandler) VerificationStatus(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	w, err := h.verificationService.Status(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.VerificationStatusResponse{
		Success: true,
		VerificationStatus: dto.VerificationStatus{
			VerificationStage: w.VerificationStage,
			Verification:      w.Verification,
		},
	})
}

func (h *VerificationHandler) CurrentStage(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	w, err := h.verificationService.Status(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.CurrentStageResponse{
		Success:           true,
		CurrentStep:       verification.CurrentStep(w.VerificationStage),
		VerificationStage: w.VerificationStage,
		Verification:      w.Verification,
	})
}

// Review is the admin approve/reject decision.
func (h *VerificationHandler) Review(c *fiber.Ctx) error {
	adminID, err := callerID(c)
	if err != nil {
		return err
	}
	workerID, err := pathUUID(c, "workerId", "Invalid worker id")
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	w, err := h.verificationService.Review(c.UserContext(), adminID, workerID, &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkerResponse{Success: true, Message: "Worker verification updated", Worker: w})
}

func (h *VerificationHandler) SetStage(c *fiber.Ctx) error {
	workerID, err := pathUUID(c, "workerId", "Invalid worker id")
	if err != nil {
		return err
	}
	var req dto.StageUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	w, err := h.verificationService.SetStage(c.UserContext(), workerID, req.Stage)
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkerResponse{Success: true, Message: "Verification stage updated", Worker: w})
}

// Queue lists workers by stage for the review back office.
func (h *VerificationHandler) Queue(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	stage := verification.Stage(c.Query("stage"))

	workers, total, err := h.verificationService.Queue(c.UserContext(), stage, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"workers": workers,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *VerificationHandler) History(c *fiber.Ctx) error {
	workerID, err := pathUUID(c, "workerId", "Invalid worker id")
	if err != nil {
		return err
	}
	rows, err := h.verificationService.History(c.UserContext(), workerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "verifications": rows})
}

func pathUUID(c *fiber.Ctx, param, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperr.Validation(message)
	}
	return id, nil
}
