package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return Fail(c, err, "Failed to register")
	}

	h.setAccessCookie(c, resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return Fail(c, err, "Internal server error")
	}

	h.setAccessCookie(c, resp)
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return Fail(c, err, "Internal server error")
	}

	h.setAccessCookie(c, resp)
	return c.JSON(resp)
}

// Logout revokes the given refresh token, or all of the caller's tokens when
// the body is empty, and clears the access cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return BadRequest(c, "Invalid request body")
		}
	}

	if err := h.authService.Logout(identity.GetUserID(c), &req); err != nil {
		return Fail(c, err, "Failed to logout")
	}

	c.ClearCookie(middleware.AccessTokenCookie)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	user := identity.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	if err := h.authService.DeleteAccount(identity.GetUserID(c), req.Password); err != nil {
		return Fail(c, err, "Failed to delete account")
	}

	c.ClearCookie(middleware.AccessTokenCookie)
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

func (h *AuthHandler) setAccessCookie(c *fiber.Ctx, resp *dto.AuthResponse) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    resp.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
