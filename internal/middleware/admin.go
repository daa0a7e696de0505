package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits requests carrying the configured X-Admin-Token or made by
// a user listed in ADMIN_USERNAMES. It must run after ActiveUser.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminUsernames := parseCSV(cfg.AdminUsernames)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			given := c.Get("X-Admin-Token")
			if given != "" && subtle.ConstantTimeCompare([]byte(given), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		user := identity.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if contains(adminUsernames, user.Username) {
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
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
