package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingDeclined, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID uuid.UUID     `gorm:"type:uuid;not null;index" json:"customerId"`
	WorkerID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"workerId"`
	ServiceID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"serviceId"`
	Date       time.Time     `gorm:"not null" json:"date"`
	TimeSlot   string        `gorm:"size:40;not null" json:"timeSlot"`
	Status     BookingStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
