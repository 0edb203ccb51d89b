package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/metrics"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/storage"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
)

// Document is a verification artifact a worker can upload.
type Document string

const (
	DocumentAadhar Document = "aadhar"
	DocumentPolice Document = "police"
	DocumentPhoto  Document = "photo"
)

type documentRule struct {
	folder  storage.Folder
	trigger verification.Trigger
	// column receives the URL; empty means the URL is returned but not stored
	column  string
	message string
}

var documents = map[Document]documentRule{
	DocumentAadhar: {
		folder:  storage.FolderAadhar,
		trigger: verification.TriggerUploadAadhar,
		column:  models.ColAadharDocURL,
		message: "Aadhar document uploaded successfully",
	},
	DocumentPolice: {
		folder:  storage.FolderPolice,
		trigger: verification.TriggerUploadPolice,
		column:  models.ColPoliceDocURL,
		message: "Police verification document uploaded successfully",
	},
	DocumentPhoto: {
		folder:  storage.FolderProfilePhotos,
		trigger: verification.TriggerUploadPhoto,
		message: "Profile photo uploaded successfully",
	},
}

// SuccessMessage is the client-facing confirmation for an upload of d.
func (d Document) SuccessMessage() string {
	return documents[d].message
}

type VerificationService struct {
	workers  repository.WorkerRepository
	audits   repository.VerificationRepository
	uploader storage.Uploader
	policy   storage.Policy
	now      func() time.Time
}

func NewVerificationService(
	workers repository.WorkerRepository,
	audits repository.VerificationRepository,
	uploader storage.Uploader,
	policy storage.Policy,
) *VerificationService {
	return &VerificationService{
		workers:  workers,
		audits:   audits,
		uploader: uploader,
		policy:   policy,
		now:      time.Now,
	}
}

// AcceptTerms moves the caller to TNC_ACCEPTED. Repeating it is a no-op.
func (s *VerificationService) AcceptTerms(ctx context.Context, userID uuid.UUID) (*models.Worker, error) {
	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return nil, err
	}
	next, err := s.next(w, verification.TriggerAcceptTerms)
	if err != nil {
		return nil, err
	}
	if next == w.VerificationStage {
		return w, nil
	}
	return s.apply(ctx, w, verification.TriggerAcceptTerms, next, nil)
}

// Submit validates file, checks the transition, uploads, and then records the
// new stage and URL in one update. Nothing reaches the blob store unless the
// file and the transition are both valid.
func (s *VerificationService) Submit(ctx context.Context, userID uuid.UUID, doc Document, file storage.File) (*models.Worker, string, error) {
	rule, ok := documents[doc]
	if !ok {
		return nil, "", apperr.Validation("Unknown document type")
	}
	if err := s.policy.Check(file.ContentType, file.Size()); err != nil {
		metrics.Uploads.WithLabelValues(string(rule.folder), "rejected").Inc()
		return nil, "", err
	}

	w, err := workerByUser(ctx, s.workers, userID)
	if err != nil {
		return nil, "", err
	}
	next, err := s.next(w, rule.trigger)
	if err != nil {
		return nil, "", err
	}

	url, err := s.uploader.Upload(ctx, rule.folder, file)
	if err != nil {
		metrics.Uploads.WithLabelValues(string(rule.folder), "failed").Inc()
		slog.Error("document upload failed",
			"worker_id", w.ID.String(), "action", string(rule.trigger), "error", err.Error())
		return nil, "", apperr.Upstream("Failed to upload file", err)
	}
	metrics.Uploads.WithLabelValues(string(rule.folder), "stored").Inc()

	var extra map[string]any
	if rule.column != "" {
		extra = map[string]any{rule.column: url}
	}
	updated, err := s.apply(ctx, w, rule.trigger, next, extra)
	if err != nil {
		return nil, "", err
	}
	return updated, url, nil
}

// Status is the read side polled by the client.
func (s *VerificationService) Status(ctx context.Context, userID uuid.UUID) (*models.Worker, error) {
	return workerByUser(ctx, s.workers, userID)
}

// SetStage is the admin stage setter. Only UNDER_REVIEW may be set directly;
// decisions go through Review so they are audited.
func (s *VerificationService) SetStage(ctx context.Context, workerID uuid.UUID, stage verification.Stage) (*models.Worker, error) {
	if !stage.Valid() {
		return nil, apperr.Validation("Invalid verification stage")
	}
	if stage != verification.StageUnderReview {
		return nil, apperr.Validation("Only UNDER_REVIEW can be set directly; use the review endpoint to approve or reject")
	}
	w, err := workerByID(ctx, s.workers, workerID)
	if err != nil {
		return nil, err
	}
	next, err := s.next(w, verification.TriggerStartReview)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, w, verification.TriggerStartReview, next, nil)
}

// Review records an admin decision: an audit row first, then the stage and
// both verified flags. The two writes are not atomic; a failure between them
// leaves an audit row for a decision that was not applied.
func (s *VerificationService) Review(ctx context.Context, adminID, workerID uuid.UUID, req *dto.ReviewRequest) (*models.Worker, error) {
	var trigger verification.Trigger
	switch req.Status {
	case verification.StageApproved:
		trigger = verification.TriggerApprove
	case verification.StageRejected:
		trigger = verification.TriggerReject
	default:
		return nil, apperr.Validation("status must be APPROVED or REJECTED")
	}
	reason := strings.TrimSpace(req.RejectedReason)
	if trigger == verification.TriggerReject && reason == "" {
		return nil, apperr.Validation("rejectedReason is required when rejecting")
	}

	w, err := workerByID(ctx, s.workers, workerID)
	if err != nil {
		return nil, err
	}
	next, err := s.next(w, trigger)
	if err != nil {
		return nil, err
	}

	audit := &models.Verification{
		ID:         uuid.New(),
		WorkerID:   w.ID,
		Stage:      next,
		ReviewedBy: adminID,
		ReviewedAt: s.now(),
	}
	if trigger == verification.TriggerReject {
		audit.RejectedReason = &reason
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, apperr.Internal("Failed to record review", err)
	}

	approved := trigger == verification.TriggerApprove
	return s.apply(ctx, w, trigger, next, map[string]any{
		models.ColIsPoliceDocVerified: approved,
		models.ColIsAadharDocVerified: approved,
	})
}

// Queue lists workers at stage (all stages when empty) for the review back office.
func (s *VerificationService) Queue(ctx context.Context, stage verification.Stage, limit, offset int) ([]models.Worker, int64, error) {
	if stage != "" && !stage.Valid() {
		return nil, 0, apperr.Validation("Invalid verification stage")
	}
	workers, total, err := s.workers.ListByStage(ctx, stage, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list workers", err)
	}
	return workers, total, nil
}

// History returns the worker's review decisions, newest first.
func (s *VerificationService) History(ctx context.Context, workerID uuid.UUID) ([]models.Verification, error) {
	if _, err := workerByID(ctx, s.workers, workerID); err != nil {
		return nil, err
	}
	rows, err := s.audits.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperr.Internal("Failed to load review history", err)
	}
	return rows, nil
}

func (s *VerificationService) next(w *models.Worker, t verification.Trigger) (verification.Stage, error) {
	next, err := verification.Next(w.VerificationStage, t)
	if err != nil {
		metrics.VerificationRefused.WithLabelValues(string(t)).Inc()
		msg := err.Error()
		return "", apperr.Wrap(apperr.KindConflict, strings.ToUpper(msg[:1])+msg[1:], err)
	}
	return next, nil
}

func (s *VerificationService) apply(ctx context.Context, w *models.Worker, t verification.Trigger, next verification.Stage, extra map[string]any) (*models.Worker, error) {
	fields := map[string]any{models.ColVerificationStage: string(next)}
	for k, v := range extra {
		fields[k] = v
	}
	updated, err := s.workers.Update(ctx, w.ID, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, apperr.Internal("Failed to update verification stage", err)
	}
	metrics.VerificationTransitions.WithLabelValues(string(t), string(next)).Inc()
	slog.Info("verification stage changed",
		"worker_id", w.ID.String(), "trigger", string(t), "from", string(w.VerificationStage), "to", string(next))
	return updated, nil
}
