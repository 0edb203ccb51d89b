package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/config"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = apperr.Validation("Email already registered")
	ErrPhoneTaken         = apperr.Validation("Phone number already registered")
	ErrUnknownEmail       = apperr.Validation("Invalid email or password")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrInvalidUser        = apperr.Unauthorized("Invalid user")
	ErrAccountDisabled    = apperr.Forbidden("Account is disabled")
	ErrAdminSignUp        = apperr.Forbidden("Admin sign-up is not allowed for this email")
)

type AuthService struct {
	users       repository.UserRepository
	cfg         *config.Config
	adminEmails map[string]bool
	now         func() time.Time
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	admins := make(map[string]bool)
	for _, e := range strings.Split(cfg.AdminEmails, ",") {
		if e = normalizeEmail(e); e != "" {
			admins[e] = true
		}
	}
	return &AuthService{users: users, cfg: cfg, adminEmails: admins, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the account, plus a worker row at TNC_PENDING when the role
// is worker, and returns a session token.
func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*models.User, string, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	if err := validateStruct(req); err != nil {
		return nil, "", err
	}
	if req.Role == models.RoleAdmin && !s.adminEmails[req.Email] {
		return nil, "", ErrAdminSignUp
	}

	taken, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", apperr.Internal("Failed to create account", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}
	taken, err = s.users.PhoneExists(ctx, req.Phone)
	if err != nil {
		return nil, "", apperr.Internal("Failed to create account", err)
	}
	if taken {
		return nil, "", ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("Failed to create account", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hash),
		Role:     req.Role,
		Address:  req.Address,
		IsActive: true,
	}

	var worker *models.Worker
	if user.Role == models.RoleWorker {
		worker = &models.Worker{
			ID:                uuid.New(),
			UserID:            user.ID,
			Category:          models.CategoryNone,
			Skills:            pq.StringArray{},
			LanguagesSpoken:   pq.StringArray{},
			Availability:      true,
			VerificationStage: verification.StageTNCPending,
		}
	}

	if err := s.users.Create(ctx, user, worker); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", apperr.Validation("Email or phone number already registered")
		}
		return nil, "", apperr.Internal("Failed to create account", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	slog.Info("user signed up", "user_id", user.ID.String(), "role", user.Role)
	return user, token, nil
}

// SignIn keeps the historical status split: an unknown email is a 400, a wrong
// password a 401.
func (s *AuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*models.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrUnknownEmail
	}
	if err != nil {
		return nil, "", apperr.Internal("Failed to sign in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser loads the caller; a session for a deleted user is unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidUser
	}
	if err != nil {
		return nil, apperr.Internal("Failed to load user", err)
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.SessionExpiry).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperr.Internal("Failed to issue session", err)
	}
	return signed, nil
}
