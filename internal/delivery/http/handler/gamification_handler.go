package handler

import (
	"time"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type GamificationHandler struct {
	uc usecase.GamificationUsecase
}

type achievementResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earned_at"`
}

type gamificationResponse struct {
	UserID       uuid.UUID             `json:"user_id"`
	TotalPoints  int                   `json:"total_points"`
	Level        int                   `json:"level"`
	Streak       int                   `json:"streak"`
	Achievements []achievementResponse `json:"achievements"`
}

func NewGamificationHandler(uc usecase.GamificationUsecase) *GamificationHandler {
	return &GamificationHandler{uc: uc}
}

func (h *GamificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Profile)
}

func (h *GamificationHandler) Profile(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized()
	}

	view, err := h.uc.Profile(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := gamificationResponse{
		UserID:       view.UserID,
		TotalPoints:  view.TotalPoints,
		Level:        view.Level,
		Streak:       view.Streak,
		Achievements: make([]achievementResponse, 0, len(view.Achievements)),
	}
	for _, a := range view.Achievements {
		res.Achievements = append(res.Achievements, achievementResponse{ID: a.ID, Name: a.Name, EarnedAt: a.EarnedAt})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
