package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is a priced offering listed by a worker.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"workerId"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:60;not null" json:"category"`
	HourlyRate  float64   `gorm:"not null;check:hourly_rate >= 0" json:"hourlyRate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Worker      *Worker   `gorm:"foreignKey:WorkerID" json:"-"`
}
