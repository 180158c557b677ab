package routes

import (
	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	v1 "skill-matrix/internal/delivery/http/routes/v1"
	"skill-matrix/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, rc *cache.Redis) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, rc)
}
