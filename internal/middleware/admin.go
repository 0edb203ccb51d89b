package middleware

import (
	"strings"

	"github.com/Dhaval523/WorkJunction/internal/config"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/session"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired passes a caller when any of these hold:
// 1. the role claim is admin
// 2. the user id is listed in ADMIN_USER_IDS
// 3. the stored user has role admin (covers promotions made after the token was issued)
func AdminRequired(users repository.UserRepository, cfg *config.Config) fiber.Handler {
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		userID, err := session.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if session.Role(c) == models.RoleAdmin || contains(adminUserIDs, userID.String()) {
			return c.Next()
		}

		if user, err := users.FindByID(c.UserContext(), userID); err == nil && user.Role == models.RoleAdmin {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}
