package middleware

import (
	"skill-matrix/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// RequireRole gates a route group behind a role predicate. It runs after the
// auth middleware, which stores the token's role in locals.
func RequireRole(allowed func(user.Role) bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(user.Role)
		if !ok || !role.Valid() {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !allowed(role) {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}

func RequireApprover() fiber.Handler {
	return RequireRole(user.Role.CanApprove)
}

func RequireManager() fiber.Handler {
	return RequireRole(user.Role.CanManage)
}

func RequireAdmin() fiber.Handler {
	return RequireRole(func(r user.Role) bool { return r == user.RoleAdmin })
}
