package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db           *gorm.DB
	storage      string
	aiConfigured bool
}

func NewHealthHandler(db *gorm.DB, storage string, aiConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, storage: storage, aiConfigured: aiConfigured}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, dbStatus := "ok", "ok"
	if err := database.Ping(ctx, h.db); err != nil {
		status, dbStatus = "degraded", "unhealthy: "+err.Error()
	}

	ai := "not_configured"
	if h.aiConfigured {
		ai = "configured"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Storage:   h.storage,
		AI:        ai,
	})
}
