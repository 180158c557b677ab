package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RatingHandler struct {
	uc usecase.RatingUsecase
}

type saveRatingRequest struct {
	SkillID     uuid.UUID  `json:"skill_id"`
	SubskillID  *uuid.UUID `json:"subskill_id"`
	Rating      string     `json:"rating"`
	SelfComment string     `json:"self_comment"`
	Submit      bool       `json:"submit"`
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

func (h *RatingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListMine)
	r.Post("/", h.Save)
	r.Post("/:id/submit", h.Submit)
}

func (h *RatingHandler) ListMine(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRatings(items))
}

func (h *RatingHandler) Save(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	var req saveRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.SaveRating(c.Context(), userID, usecase.SaveRatingInput{
		SkillID:     req.SkillID,
		SubskillID:  req.SubskillID,
		Rating:      rating.Level(req.Rating),
		SelfComment: req.SelfComment,
		Submit:      req.Submit,
	})
	if err != nil {
		return mapRatingError(err)
	}
	return response.Success(c, fiber.StatusOK, "Rating saved successfully", dto.FromRating(saved))
}

func (h *RatingHandler) Submit(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.SubmitRating(c.Context(), userID, id); err != nil {
		return mapRatingError(err)
	}
	return response.Success(c, fiber.StatusOK, "Rating submitted for approval", nil)
}

func mapRatingError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRatingLevel), errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound), errors.Is(err, usecase.ErrRatingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
