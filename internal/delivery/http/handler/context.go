package handler

import (
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user id the auth middleware stored.
func currentUserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func currentRole(c fiber.Ctx) (user.Role, bool) {
	role, ok := c.Locals(middleware.CtxRoleKey).(user.Role)
	if !ok || !role.Valid() {
		return "", false
	}
	return role, true
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func unauthorized() error {
	return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
}
