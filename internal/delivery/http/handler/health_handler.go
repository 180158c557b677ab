package handler

import (
	"context"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, rc *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: rc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports liveness plus dependency status. A down cache does not fail
// the check since the service degrades to serving from Postgres.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
	}

	cacheStatus := "ok"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		cacheStatus = "down"
	}

	data := map[string]string{
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	if dbStatus != "ok" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
