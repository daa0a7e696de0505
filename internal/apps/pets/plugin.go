package pets

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for the pets aggregate.
type Plugin struct{}

// New creates a new pets Plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "pets" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&models.Pet{},
		&models.PetPhoto{},
	}
}

func (p *Plugin) RoutePrefixes() []string { return []string{"/pets"} }

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewPetService(deps.DB, deps.Store, deps.Config.MaxUploadSize)
	handler := NewPetHandler(svc)

	g := router.Group("/pets")
	g.Post("", handler.Create)
	g.Get("", handler.List)
	g.Get("/stats", handler.Stats)
	g.Delete("/photos/:photo_id", handler.DeletePhoto)
	g.Get("/:id", handler.Get)
	g.Put("/:id", handler.Update)
	g.Delete("/:id", handler.Delete)
	g.Patch("/:id/mood", handler.SetMood)
	g.Post("/:id/interaction", handler.Interact)
	g.Post("/:id/photos", handler.AddPhoto)
	g.Post("/:id/upload-photo", handler.UploadPhoto)
	g.Get("/:id/photos", handler.ListPhotos)
	g.Get("/:id/ai-prompt", handler.AIPrompt)
}
