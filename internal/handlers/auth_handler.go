package handlers

import (
	"github.com/Dhaval523/WorkJunction/internal/config"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/services"
	"github.com/Dhaval523/WorkJunction/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OTPService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, otpService *services.OTPService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, otpService: otpService, cfg: cfg}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.SignUp(c.UserContext(), &req)
	if err != nil {
		return err
	}

	session.SetCookie(c, h.cfg, token)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	})
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.SignIn(c.UserContext(), &req)
	if err != nil {
		return err
	}

	session.SetCookie(c, h.cfg, token)
	return c.JSON(dto.AuthResponse{
		Message: "Signed in successfully",
		User:    user,
		Token:   token,
	})
}

func (h *AuthHandler) LogOut(c *fiber.Ctx) error {
	session.ClearCookie(c, h.cfg)
	return c.JSON(dto.MessageResponse{Success: true, Message: "Logged out successfully"})
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.SendOTPRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.otpService.Send(c.UserContext(), userID, &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "OTP sent successfully"})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.VerifyOTPRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.otpService.Verify(c.UserContext(), userID, &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Mobile number verified successfully"})
}
