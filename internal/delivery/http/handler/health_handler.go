package handler

import (
	"context"
	"time"

	"careerquest/internal/database"
	"careerquest/internal/infrastructure/cache"
	"careerquest/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cache *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	cacheStatus := "up"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "bypass"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
