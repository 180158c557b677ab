package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Overview)
	r.Get("/:categoryId", h.Category)
}

func (h *ProgressHandler) Overview(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	items, err := h.uc.Overview(c.Context(), userID)
	if err != nil {
		return mapProgressError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCategoryProgressList(items))
}

func (h *ProgressHandler) Category(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	categoryID, err := pathUUID(c, "categoryId")
	if err != nil {
		return err
	}

	cp, err := h.uc.CategorySummary(c.Context(), userID, categoryID)
	if err != nil {
		return mapProgressError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCategoryProgress(cp))
}

func mapProgressError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
