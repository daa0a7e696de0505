// Package identity resolves the authenticated caller from a request.
package identity

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey = "user"
	userKey  = "current_user"
)

// SubjectFromToken extracts the numeric user id from the verified JWT in context.
func SubjectFromToken(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals(tokenKey).(*jwt.Token)
	if !ok || token == nil {
		return 0, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return 0, errors.New("missing sub claim")
	}

	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("malformed sub claim")
	}
	return uint(id), nil
}

// SetUser stores the loaded caller on the request.
func SetUser(c *fiber.Ctx, u *models.User) {
	c.Locals(userKey, u)
}

// CurrentUser returns the caller loaded by the active-user middleware, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userKey).(*models.User)
	return u
}

// GetUserID returns the caller's id, or 0 outside an authenticated route.
func GetUserID(c *fiber.Ctx) uint {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}
