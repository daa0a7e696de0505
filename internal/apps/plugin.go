package apps

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries the shared collaborators handed to every feature module.
type Deps struct {
	DB         *gorm.DB
	Config     *config.Config
	Store      storage.FileStore
	Moderation *services.ModerationService
}

// Plugin defines the interface every feature module must implement.
type Plugin interface {
	// ID returns the unique module identifier used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RoutePrefixes lists the path prefixes, relative to /api, that the module's
	// routes live under. Each one requires an active, authenticated user.
	RoutePrefixes() []string

	// RegisterRoutes mounts the module's routes on the /api group.
	RegisterRoutes(router fiber.Router, deps *Deps)
}
