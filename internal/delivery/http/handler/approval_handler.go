package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApprovalHandler struct {
	uc usecase.ApprovalUsecase
}

type decisionRequest struct {
	Comment string `json:"comment"`
}

func NewApprovalHandler(uc usecase.ApprovalUsecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

func (h *ApprovalHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/pending", h.ListPending)
	r.Get("/history", h.History)
	r.Post("/:id/approve", h.Approve)
	r.Post("/:id/reject", h.Reject)
}

func (h *ApprovalHandler) ListPending(c fiber.Ctx) error {
	items, err := h.uc.ListPending(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRatings(items))
}

func (h *ApprovalHandler) History(c fiber.Ctx) error {
	items, err := h.uc.History(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRatings(items))
}

func (h *ApprovalHandler) Approve(c fiber.Ctx) error {
	approverID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req decisionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Approve(c.Context(), approverID, id, req.Comment); err != nil {
		return mapRatingError(err)
	}
	return response.Success(c, fiber.StatusOK, "Rating approved", nil)
}

func (h *ApprovalHandler) Reject(c fiber.Ctx) error {
	approverID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req decisionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Reject(c.Context(), approverID, id, req.Comment); err != nil {
		return mapRatingError(err)
	}
	return response.Success(c, fiber.StatusOK, "Rating rejected", nil)
}
