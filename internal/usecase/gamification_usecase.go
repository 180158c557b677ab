package usecase

import (
	"context"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

// GamificationView is a user's points, level and earned achievements.
type GamificationView struct {
	repository.Gamification
	Achievements []repository.Achievement
}

type GamificationUsecase interface {
	Profile(ctx context.Context, userID uuid.UUID) (GamificationView, error)
}

type GamificationService struct {
	repo repository.GamificationRepository
}

func NewGamificationUsecase(repo repository.GamificationRepository) *GamificationService {
	return &GamificationService{repo: repo}
}

func (u *GamificationService) Profile(ctx context.Context, userID uuid.UUID) (GamificationView, error) {
	if userID == uuid.Nil {
		return GamificationView{}, ErrInvalidInput
	}

	g, err := u.repo.Get(ctx, userID)
	if err != nil {
		return GamificationView{}, ErrInternal
	}
	achievements, err := u.repo.Achievements(ctx, userID)
	if err != nil {
		return GamificationView{}, ErrInternal
	}

	return GamificationView{Gamification: g, Achievements: achievements}, nil
}
