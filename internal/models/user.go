package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
	RoleAdmin    = "admin"
)

// Address is embedded into users as address_* columns.
type Address struct {
	Street  string `gorm:"size:255" json:"street,omitempty"`
	City    string `gorm:"size:120;index" json:"city,omitempty"`
	State   string `gorm:"size:120" json:"state,omitempty"`
	ZipCode string `gorm:"size:20" json:"zipCode,omitempty"`
}

type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName         string     `gorm:"size:120;not null" json:"fullName"`
	Email            string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone            string     `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Password         string     `gorm:"not null" json:"-"`
	Role             string     `gorm:"size:20;not null;default:'customer'" json:"role"`
	Address          Address    `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ProfileImage     *string    `gorm:"size:500" json:"profileImage,omitempty"`
	IsActive         bool       `gorm:"not null;default:true" json:"isActive"`
	IsMobileVerified bool       `gorm:"not null;default:false" json:"isMobileVerified"`
	OTPHash          *string    `gorm:"column:otp_hash;size:64" json:"-"`
	OTPExpiresAt     *time.Time `gorm:"column:otp_expires_at" json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
