package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/config"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/metrics"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/ratelimit"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/sms"
	"github.com/google/uuid"
)

var (
	ErrPhoneMismatch  = apperr.Validation("Mobile number does not match your account")
	ErrInvalidOTP     = apperr.Validation("Invalid or expired OTP")
	ErrTooManyOTPSend = apperr.RateLimited("Too many OTP requests, please try again later")
)

type OTPService struct {
	users    repository.UserRepository
	sender   sms.Sender
	limiter  ratelimit.Limiter
	cfg      *config.Config
	now      func() time.Time
	generate func(digits int) (string, error)
}

func NewOTPService(users repository.UserRepository, sender sms.Sender, limiter ratelimit.Limiter, cfg *config.Config) *OTPService {
	return &OTPService{
		users:    users,
		sender:   sender,
		limiter:  limiter,
		cfg:      cfg,
		now:      time.Now,
		generate: randomDigits,
	}
}

// Send issues a fresh code for the caller's own phone number. Only the hash
// of the code is stored.
func (s *OTPService) Send(ctx context.Context, userID uuid.UUID, req *dto.SendOTPRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	user, err := s.caller(ctx, userID, req.MobileNumber)
	if err != nil {
		return err
	}

	allowed, err := s.limiter.Allow(ctx, user.ID.String())
	if err != nil {
		// counters unavailable: fail open
		slog.Warn("otp rate limiter unavailable", "user_id", user.ID.String(), "error", err)
		allowed = true
	}
	if !allowed {
		metrics.OTPSent.WithLabelValues("rate_limited").Inc()
		return ErrTooManyOTPSend
	}

	code, err := s.generate(s.cfg.OTPLength)
	if err != nil {
		return apperr.Internal("Failed to generate OTP", err)
	}
	if err := s.users.SetOTP(ctx, user.ID, hashOTP(code), s.now().Add(s.cfg.OTPExpiry)); err != nil {
		return apperr.Internal("Failed to store OTP", err)
	}

	body := fmt.Sprintf("Your WorkJunction verification code is %s. It expires in %d minutes.", code, int(s.cfg.OTPExpiry.Minutes()))
	if err := s.sender.Send(ctx, sms.E164(s.cfg.SMSCountryCode, user.Phone), body); err != nil {
		metrics.OTPSent.WithLabelValues("failed").Inc()
		slog.Error("otp delivery failed", "user_id", user.ID.String(), "action", "send_otp", "error", err.Error())
		return apperr.Upstream("Failed to send OTP", err)
	}
	metrics.OTPSent.WithLabelValues("sent").Inc()
	return nil
}

// Verify checks the code against the stored hash and expiry, marks the phone
// verified and clears the OTP state.
func (s *OTPService) Verify(ctx context.Context, userID uuid.UUID, req *dto.VerifyOTPRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	user, err := s.caller(ctx, userID, req.MobileNumber)
	if err != nil {
		return err
	}

	if user.OTPHash == nil || user.OTPExpiresAt == nil || s.now().After(*user.OTPExpiresAt) {
		metrics.OTPVerified.WithLabelValues("expired").Inc()
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(hashOTP(req.OTP)), []byte(*user.OTPHash)) != 1 {
		metrics.OTPVerified.WithLabelValues("mismatch").Inc()
		return ErrInvalidOTP
	}

	if err := s.users.MarkMobileVerified(ctx, user.ID); err != nil {
		return apperr.Internal("Failed to verify OTP", err)
	}
	metrics.OTPVerified.WithLabelValues("verified").Inc()
	return nil
}

func (s *OTPService) caller(ctx context.Context, userID uuid.UUID, mobile string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidUser
	}
	if err != nil {
		return nil, apperr.Internal("Failed to load user", err)
	}
	if user.Phone != mobile {
		return nil, ErrPhoneMismatch
	}
	return user, nil
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func randomDigits(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	buf := make([]byte, n)
	ten := big.NewInt(10)
	for i := range buf {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
