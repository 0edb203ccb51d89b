package models

import (
	"time"

	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
)

// Verification is an append-only audit row written for each admin review decision.
type Verification struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkerID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"workerId"`
	Stage          verification.Stage `gorm:"size:32;not null" json:"stage"`
	ReviewedBy     uuid.UUID          `gorm:"type:uuid;not null" json:"reviewedBy"`
	ReviewedAt     time.Time          `gorm:"not null" json:"reviewedAt"`
	RejectedReason *string            `gorm:"size:1000" json:"rejectedReason,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}
