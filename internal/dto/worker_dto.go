package dto

import (
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/verification"
)

// UpdateProfileRequest is a partial update; absent keys leave the column untouched.
type UpdateProfileRequest struct {
	Category        Optional[models.Category] `json:"category"`
	Skills          Optional[[]string]        `json:"skills"`
	Experience      Optional[int]             `json:"experience"`
	HourlyRate      Optional[float64]         `json:"hourlyRate"`
	Bio             Optional[string]          `json:"bio"`
	LanguagesSpoken Optional[[]string]        `json:"languagesSpoken"`
}

type WorkerResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Worker  *models.Worker `json:"worker"`
}

type UploadResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	FileURL string         `json:"fileUrl"`
	Worker  *models.Worker `json:"worker"`
}

type VerificationStatus struct {
	VerificationStage verification.Stage        `json:"verificationStage"`
	Verification      models.WorkerVerification `json:"verification"`
}

type VerificationStatusResponse struct {
	Success            bool               `json:"success"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

type CurrentStageResponse struct {
	Success           bool                      `json:"success"`
	CurrentStep       int                       `json:"currentStep"`
	VerificationStage verification.Stage        `json:"verificationStage"`
	Verification      models.WorkerVerification `json:"verification"`
}

type ReviewRequest struct {
	Status         verification.Stage `json:"status"`
	RejectedReason string             `json:"rejectedReason"`
}

type StageUpdateRequest struct {
	Stage verification.Stage `json:"stage"`
}

type WorkerSearchQuery struct {
	Name            string
	City            string
	Category        string
	Skills          []string
	LanguagesSpoken []string
	MinExperience   *int
	MinPrice        *float64
	MaxPrice        *float64
	Limit           int
}

type PublicUser struct {
	ID           string         `json:"id"`
	FullName     string         `json:"fullName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Address      models.Address `json:"address"`
	ProfileImage *string        `json:"profileImage,omitempty"`
}

type WorkerSearchResult struct {
	*models.Worker
	User PublicUser `json:"user"`
}
