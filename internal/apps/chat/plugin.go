package chat

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for pet chat and AI helpers.
type Plugin struct {
	ai Completer
}

// New creates a chat Plugin. A nil completer uses the configured HTTP client.
func New(ai Completer) *Plugin {
	return &Plugin{ai: ai}
}

func (p *Plugin) ID() string { return "chat" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&models.Message{},
	}
}

func (p *Plugin) RoutePrefixes() []string { return []string{"/pets", "/ai"} }

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	ai := p.ai
	if ai == nil {
		ai = NewClient(deps.Config)
	}
	handler := NewChatHandler(NewChatService(deps.DB, ai))

	router.Post("/pets/:id/chat", handler.Chat)
	router.Get("/pets/:id/messages", handler.Messages)
	router.Post("/ai/feed-content", handler.FeedContent)
	router.Post("/ai/sentiment", handler.Sentiment)
}
