package feeds

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for pet feeds.
type Plugin struct{}

// New creates a new feeds Plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "feeds" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&models.Feed{},
	}
}

func (p *Plugin) RoutePrefixes() []string { return []string{"/feeds"} }

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	handler := NewFeedHandler(NewFeedService(deps.DB, deps.Moderation))

	g := router.Group("/feeds")
	g.Post("", handler.Create)
	g.Get("", handler.ListPublic)
	g.Get("/mine", handler.ListMine)
	g.Get("/:id", handler.Get)
	g.Delete("/:id", handler.Delete)
	g.Post("/:id/like", handler.Like)
}
