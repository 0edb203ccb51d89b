package dto

import "github.com/Dhaval523/WorkJunction/internal/models"

type SignUpRequest struct {
	FullName string         `json:"fullName" validate:"required,min=2,max=120"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Phone    string         `json:"phone" validate:"required,len=10,numeric"`
	Role     string         `json:"role" validate:"omitempty,oneof=customer worker admin"`
	Address  models.Address `json:"address"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

type SendOTPRequest struct {
	MobileNumber string `json:"mobileNumber" validate:"required,len=10,numeric"`
}

type VerifyOTPRequest struct {
	OTP          string `json:"otp" validate:"required,numeric"`
	MobileNumber string `json:"mobileNumber" validate:"required,len=10,numeric"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Redis     string `json:"redis"`
}
