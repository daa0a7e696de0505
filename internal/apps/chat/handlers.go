package chat

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	service *ChatService
}

func NewChatHandler(service *ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	resp, err := h.service.Chat(c.UserContext(), identity.GetUserID(c), petID, req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to chat with pet")
	}
	return c.JSON(resp)
}

func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	petID, ok := handlers.ParseID(c, "id")
	if !ok {
		return handlers.BadRequest(c, "Invalid pet ID")
	}

	resp, err := h.service.Messages(c.UserContext(), identity.GetUserID(c), petID,
		c.QueryInt("page", 1), c.QueryInt("size", 20))
	if err != nil {
		return handlers.Fail(c, err, "Failed to fetch messages")
	}
	return c.JSON(resp)
}

func (h *ChatHandler) FeedContent(c *fiber.Ctx) error {
	var req FeedContentRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	resp, err := h.service.FeedContent(c.UserContext(), identity.GetUserID(c), req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to generate feed content")
	}
	return c.JSON(resp)
}

func (h *ChatHandler) Sentiment(c *fiber.Ctx) error {
	var req SentimentRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "Invalid request body")
	}

	resp, err := h.service.Sentiment(c.UserContext(), req)
	if err != nil {
		return handlers.Fail(c, err, "Failed to analyze sentiment")
	}
	return c.JSON(resp)
}
