package handlers

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	user, err := h.userService.Get(identity.GetUserID(c))
	if err != nil {
		return Fail(c, err, "Failed to fetch profile")
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(identity.GetUserID(c), &req)
	if err != nil {
		return Fail(c, err, "Failed to update profile")
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Deactivate soft-deletes the caller's account.
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.userService.Deactivate(identity.GetUserID(c)); err != nil {
		return Fail(c, err, "Failed to deactivate account")
	}
	return c.JSON(fiber.Map{"message": "Account deactivated"})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	if err := h.userService.ChangePassword(identity.GetUserID(c), &req); err != nil {
		return Fail(c, err, "Failed to change password")
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := ParseID(c, "id")
	if !ok {
		return BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetActive(id)
	if err != nil {
		return Fail(c, err, "Failed to fetch user")
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, size := dto.ClampPage(c.QueryInt("page", 1), c.QueryInt("size", dto.DefaultPageSize))

	users, total, err := h.userService.List(page, size)
	if err != nil {
		return Fail(c, err, "Failed to list users")
	}

	resp := dto.UserListResponse{
		Users:   make([]dto.UserResponse, 0, len(users)),
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: int64(page*size) < total,
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}
