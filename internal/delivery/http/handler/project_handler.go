package handler

import (
	"errors"
	"time"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/project"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc          usecase.ProjectUsecase
	suggestions usecase.SuggestionUsecase
}

type requiredSkillRequest struct {
	SkillID        uuid.UUID  `json:"skill_id"`
	SubskillID     *uuid.UUID `json:"subskill_id"`
	RequiredRating string     `json:"required_rating"`
}

type initialAssignmentRequest struct {
	UserID               uuid.UUID `json:"user_id"`
	AllocationPercentage int       `json:"allocation_percentage"`
}

type createProjectRequest struct {
	Name           string                     `json:"name"`
	Description    string                     `json:"description"`
	StartDate      *time.Time                 `json:"start_date"`
	EndDate        *time.Time                 `json:"end_date"`
	RequiredSkills []requiredSkillRequest     `json:"required_skills"`
	Assignments    []initialAssignmentRequest `json:"assignments"`
}

type updateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

type validationRequest struct {
	UserID     uuid.UUID  `json:"user_id"`
	SkillID    uuid.UUID  `json:"skill_id"`
	SubskillID *uuid.UUID `json:"subskill_id"`
	Notes      string     `json:"notes"`
}

func NewProjectHandler(uc usecase.ProjectUsecase, suggestions usecase.SuggestionUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc, suggestions: suggestions}
}

// RegisterRoutes exposes project reads to every authenticated user;
// RegisterManagerRoutes the write side, which the caller wraps in the manager
// role gate.
func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *ProjectHandler) RegisterManagerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Post("/:id/status", h.Transition)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/required-skills", h.AddRequiredSkill)
	r.Delete("/:id/required-skills/:skillId", h.RemoveRequiredSkill)
	r.Get("/:id/suggestions", h.Suggestions)
	r.Post("/:id/validations", h.AddValidation)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	var status *project.Status
	if raw := c.Query("status"); raw != "" {
		s := project.Status(raw)
		status = &s
	}

	items, err := h.uc.List(c.Context(), status)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProjects(items))
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProjectDetail(detail))
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	creatorID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	var req createProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	for _, rs := range req.RequiredSkills {
		in.RequiredSkills = append(in.RequiredSkills, usecase.RequiredSkillInput{
			SkillID:        rs.SkillID,
			SubskillID:     rs.SubskillID,
			RequiredRating: rating.Level(rs.RequiredRating),
		})
	}
	for _, a := range req.Assignments {
		in.Assignments = append(in.Assignments, usecase.InitialAssignmentInput{
			UserID:               a.UserID,
			AllocationPercentage: a.AllocationPercentage,
		})
	}

	created, err := h.uc.Create(c.Context(), creatorID, in)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "Project created successfully", dto.FromProject(created))
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, usecase.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProject(updated))
}

func (h *ProjectHandler) Transition(c fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Transition(c.Context(), id, project.Status(req.Status), actorID); err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Suggestions ranks employees against the project's required skills by their
// approved ratings.
func (h *ProjectHandler) Suggestions(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.suggestions.SuggestForProject(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNoRequiredSkills) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Project has no required skills", nil, err)
		}
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSuggestions(items))
}

func (h *ProjectHandler) AddValidation(c fiber.Ctx) error {
	validatorID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req validationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.AddValidation(c.Context(), id, validatorID, usecase.ValidationInput{
		UserID:     req.UserID,
		SkillID:    req.SkillID,
		SubskillID: req.SubskillID,
		Notes:      req.Notes,
	}); err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill validation recorded", nil)
}

func (h *ProjectHandler) AddRequiredSkill(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req requiredSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rs, err := h.uc.AddRequiredSkill(c.Context(), id, usecase.RequiredSkillInput{
		SkillID:        req.SkillID,
		SubskillID:     req.SubskillID,
		RequiredRating: rating.Level(req.RequiredRating),
	})
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "Required skill added", dto.FromRequiredSkill(rs))
}

func (h *ProjectHandler) RemoveRequiredSkill(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skillId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveRequiredSkill(c.Context(), id, skillID); err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "Required skill removed", nil)
}

func mapProjectError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrNoRequiredSkills):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound), errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrSkillNotFound), errors.Is(err, usecase.ErrSubskillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrInvalidAllocation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid allocation percentage", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
