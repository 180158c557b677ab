package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserAdminUsecase
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func NewUserHandler(uc usecase.UserAdminUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterRoutes exposes the caller's own profile; RegisterAdminRoutes the
// account management surface, which the caller wraps in the admin role gate.
func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Me)
}

func (h *UserHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Put("/:id/role", h.UpdateRole)
	r.Post("/:id/reset-password", h.ResetPassword)
	r.Post("/:id/toggle-status", h.ToggleStatus)
	r.Delete("/:id", h.Delete)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(p))
}

func (h *UserHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUsers(items))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(p))
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req createUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Create(c.Context(), usecase.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "User created successfully", dto.FromUser(p))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Update(c.Context(), id, usecase.UpdateUserInput{Email: req.Email, FullName: req.FullName})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(p))
}

func (h *UserHandler) UpdateRole(c fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateRole(c.Context(), actorID, id, user.Role(req.Role)); err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Role updated", nil)
}

func (h *UserHandler) ResetPassword(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.ResetPassword(c.Context(), id, req.NewPassword); err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password reset", nil)
}

func (h *UserHandler) ToggleStatus(c fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	active, err := h.uc.ToggleStatus(c.Context(), actorID, id)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"is_active": active})
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actorID, id); err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "User deleted", nil)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already in use", nil, err)
	case errors.Is(err, usecase.ErrSelfModification):
		return middleware.NewAppError(fiber.StatusForbidden, "Cannot modify own account this way", nil, err)
	case errors.Is(err, usecase.ErrWeakPassword), errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
