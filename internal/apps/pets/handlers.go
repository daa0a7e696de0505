package pets

import (
	"io"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PetHandler struct {
	service *PetService
}

func NewPetHandler(service *PetService) *PetHandler {
	return &PetHandler{service: service}
}

func (h *PetHandler) Create(c *fiber.Ctx) error {
	var req CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	pet, err := h.service.Create(c.UserContext(), identity.GetUserID(c), req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to create pet")
	}
	return c.Status(fiber.StatusCreated).JSON(NewPetResponse(pet))
}

func (h *PetHandler) List(c *fiber.Ctx) error {
	q := ListQuery{
		Page:   c.QueryInt("page", 1),
		Size:   c.QueryInt("size", 10),
		Search: c.Query("search"),
		Mood:   c.Query("mood"),
	}

	resp, err := h.service.List(c.UserContext(), identity.GetUserID(c), q)
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch pets")
	}
	return c.JSON(resp)
}

func (h *PetHandler) Get(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	resp, err := h.service.Get(c.UserContext(), identity.GetUserID(c), petID)
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch pet")
	}
	return c.JSON(resp)
}

func (h *PetHandler) Update(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	var req UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	pet, err := h.service.Update(c.UserContext(), identity.GetUserID(c), petID, req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to update pet")
	}
	return c.JSON(NewPetResponse(pet))
}

func (h *PetHandler) Delete(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	if err := h.service.Delete(c.UserContext(), identity.GetUserID(c), petID); err != nil {
		return handlers.Fail(c, err, "Failed to delete pet")
	}
	return c.JSON(fiber.Map{"message": "Pet deleted successfully"})
}

func (h *PetHandler) SetMood(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	var req MoodRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	pet, err := h.service.SetMood(c.UserContext(), identity.GetUserID(c), petID, req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to update mood")
	}
	return c.JSON(NewPetResponse(pet))
}

func (h *PetHandler) Interact(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	resp, err := h.service.RecordInteraction(c.UserContext(), identity.GetUserID(c), petID)
	if err != nil {
		return handlers.Fail(c, err, "Failed to record interaction")
	}
	return c.JSON(resp)
}

func (h *PetHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext(), identity.GetUserID(c))
	if err != nil {
		return handlers.Fail(c, err, "Failed to compute pet stats")
	}
	return c.JSON(stats)
}

func (h *PetHandler) AIPrompt(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	resp, err := h.service.AIPrompt(c.UserContext(), identity.GetUserID(c), petID)
	if err != nil {
		return handlers.Fail(c, err, "Failed to build prompt")
	}
	return c.JSON(resp)
}

func (h *PetHandler) ListPhotos(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	photos, err := h.service.ListPhotos(c.UserContext(), identity.GetUserID(c), petID)
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch photos")
	}
	return c.JSON(fiber.Map{"photos": photos, "total": len(photos)})
}

func (h *PetHandler) AddPhoto(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	var req AddPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	photo, err := h.service.AddPhoto(c.UserContext(), identity.GetUserID(c), petID, req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to add photo")
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (h *PetHandler) UploadPhoto(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return handlers.BadRequest(c, "file is required")
	}
	if h.service.maxUploadSize > 0 && fh.Size > h.service.maxUploadSize {
		return handlers.Fail(c, services.ErrFileTooLarge, "Failed to upload photo")
	}

	f, err := fh.Open()
	if err != nil {
		return handlers.Fail(c, err, "Failed to read upload")
	}
	defer f.Close()

	limit := h.service.maxUploadSize
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return handlers.Fail(c, err, "Failed to read upload")
	}

	isAvatar, _ := strconv.ParseBool(c.FormValue("is_avatar", "false"))
	photo, err := h.service.UploadPhoto(c.UserContext(), identity.GetUserID(c), petID, Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
		Description: c.FormValue("description"),
		IsAvatar:    isAvatar,
	})
	if err != nil {
		return handlers.Fail(c, err, "Failed to upload photo")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Photo uploaded successfully",
		"url":     photo.URL,
		"photo":   photo,
	})
}

func (h *PetHandler) DeletePhoto(c *fiber.Ctx) error {
	photoID, ok := handlers.ParseID(c, "photo_id")
	if !ok {
		return handlers.BadRequest(c, "Invalid photo ID")
	}

	if err := h.service.DeletePhoto(c.UserContext(), identity.GetUserID(c), photoID); err != nil {
		return handlers.Fail(c, err, "Failed to delete photo")
	}
	return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
}
