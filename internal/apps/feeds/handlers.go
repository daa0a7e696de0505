package feeds

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type FeedHandler struct {
	service *FeedService
}

func NewFeedHandler(service *FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) Create(c *fiber.Ctx) error {
	var req CreateFeedRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	feed, err := h.service.Create(c.UserContext(), identity.GetUserID(c), req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to create feed")
	}
	return c.Status(fiber.StatusCreated).JSON(feed)
}

func (h *FeedHandler) ListPublic(c *fiber.Ctx) error {
	resp, err := h.service.ListPublic(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("size", 10))
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch feeds")
	}
	return c.JSON(resp)
}

func (h *FeedHandler) ListMine(c *fiber.Ctx) error {
	resp, err := h.service.ListMine(c.UserContext(), identity.GetUserID(c), c.QueryInt("page", 1), c.QueryInt("size", 10))
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch feeds")
	}
	return c.JSON(resp)
}

func (h *FeedHandler) Get(c *fiber.Ctx) error {
	feedID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid feed ID")
	}

	feed, err := h.service.Get(c.UserContext(), identity.GetUserID(c), feedID)
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch feed")
	}
	return c.JSON(feed)
}

func (h *FeedHandler) Delete(c *fiber.Ctx) error {
	feedID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid feed ID")
	}

	if err := h.service.Delete(c.UserContext(), identity.GetUserID(c), feedID); err != nil {
		return handlers.Fail(c, err, "Failed to delete feed")
	}
	return c.JSON(fiber.Map{"message": "Feed deleted successfully"})
}

func (h *FeedHandler) Like(c *fiber.Ctx) error {
	feedID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid feed ID")
	}

	resp, err := h.service.Like(c.UserContext(), identity.GetUserID(c), feedID)
	if err != nil {
		return handlers.Fail(c, err, "Failed to like feed")
	}
	return c.JSON(resp)
}
