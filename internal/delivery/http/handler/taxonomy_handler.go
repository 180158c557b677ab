package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TaxonomyHandler struct {
	uc usecase.TaxonomyUsecase
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type skillRequest struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type subskillRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func NewTaxonomyHandler(uc usecase.TaxonomyUsecase) *TaxonomyHandler {
	return &TaxonomyHandler{uc: uc}
}

// RegisterRoutes exposes the read side; RegisterAdminRoutes the write side,
// which the caller wraps in the manager role gate.
func (h *TaxonomyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Tree)
}

func (h *TaxonomyHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/:id", h.UpdateCategory)
	r.Delete("/categories/:id", h.DeleteCategory)
	r.Post("/skills", h.CreateSkill)
	r.Delete("/skills/:id", h.DeleteSkill)
	r.Post("/subskills", h.CreateSubskill)
	r.Delete("/subskills/:id", h.DeleteSubskill)
}

func (h *TaxonomyHandler) Tree(c fiber.Ctx) error {
	t, err := h.uc.LoadTaxonomy(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TaxonomyTree(t))
}

func (h *TaxonomyHandler) CreateCategory(c fiber.Ctx) error {
	var req categoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateCategory(c.Context(), usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, "Category created successfully", map[string]any{"id": created.ID})
}

func (h *TaxonomyHandler) UpdateCategory(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateCategory(c.Context(), id, usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}); err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TaxonomyHandler) DeleteCategory(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteCategory(c.Context(), id); err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TaxonomyHandler) CreateSkill(c fiber.Ctx) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateSkill(c.Context(), usecase.CreateSkillInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill created successfully", map[string]any{"id": created.ID})
}

func (h *TaxonomyHandler) DeleteSkill(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteSkill(c.Context(), id); err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TaxonomyHandler) CreateSubskill(c fiber.Ctx) error {
	var req subskillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateSubskill(c.Context(), usecase.CreateSubskillInput{
		SkillID:     req.SkillID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, "Subskill created successfully", map[string]any{"id": created.ID})
}

func (h *TaxonomyHandler) DeleteSubskill(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteSubskill(c.Context(), id); err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapTaxonomyError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
