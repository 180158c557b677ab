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

type AssignmentHandler struct {
	uc usecase.AssignmentUsecase
}

type assignRequest struct {
	ProjectID            uuid.UUID `json:"project_id"`
	UserID               uuid.UUID `json:"user_id"`
	AllocationPercentage int       `json:"allocation_percentage"`
}

type updateAllocationRequest struct {
	AllocationPercentage int `json:"allocation_percentage"`
}

type capacityResponse struct {
	UserID            uuid.UUID            `json:"user_id"`
	TotalAllocation   int                  `json:"total_allocation"`
	AvailableCapacity int                  `json:"available_capacity"`
	Assignments       []capacityAssignment `json:"assignments"`
}

type capacityAssignment struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Percentage int       `json:"percentage"`
}

func NewAssignmentHandler(uc usecase.AssignmentUsecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Assign)
	r.Put("/:id", h.UpdateAllocation)
	r.Delete("/:id", h.Unassign)
	r.Get("/capacity/:userId", h.Capacity)
}

func (h *AssignmentHandler) Assign(c fiber.Ctx) error {
	assignerID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	var req assignRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.Assign(c.Context(), assignerID, usecase.AssignInput{
		ProjectID:            req.ProjectID,
		UserID:               req.UserID,
		AllocationPercentage: req.AllocationPercentage,
	})
	if err != nil {
		return mapAssignmentError(err)
	}
	return response.Success(c, fiber.StatusOK, "Assignment created successfully", dto.FromAssignment(a))
}

func (h *AssignmentHandler) UpdateAllocation(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateAllocationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateAllocation(c.Context(), id, req.AllocationPercentage); err != nil {
		return mapAssignmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AssignmentHandler) Unassign(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Unassign(c.Context(), id); err != nil {
		return mapAssignmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AssignmentHandler) Capacity(c fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	cap, err := h.uc.Capacity(c.Context(), userID)
	if err != nil {
		return mapAssignmentError(err)
	}

	res := capacityResponse{
		UserID:            cap.UserID,
		TotalAllocation:   cap.TotalAllocation,
		AvailableCapacity: cap.AvailableCapacity,
		Assignments:       make([]capacityAssignment, 0, len(cap.Assignments)),
	}
	for _, a := range cap.Assignments {
		res.Assignments = append(res.Assignments, capacityAssignment{
			ID:         a.ID,
			ProjectID:  a.ProjectID,
			Percentage: a.Percentage,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapAssignmentError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCapacityExceeded):
		return middleware.NewAppError(fiber.StatusConflict, "Allocation exceeds available capacity", nil, err)
	case errors.Is(err, usecase.ErrInvalidAllocation), errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid allocation percentage", nil, err)
	case errors.Is(err, usecase.ErrProjectNotAssignable):
		return middleware.NewAppError(fiber.StatusConflict, "Project is not accepting assignments", nil, err)
	case errors.Is(err, usecase.ErrAssignmentNotFound), errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
