package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrInvalidRatingLevel = errors.New("invalid rating level")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrSkillNotFound      = errors.New("skill not found")
)

type SaveRatingInput struct {
	SkillID     uuid.UUID
	SubskillID  *uuid.UUID
	Rating      rating.Level
	SelfComment string
	// Submit skips the draft stage and files the rating as pending.
	Submit bool
}

type RatingUsecase interface {
	SaveRating(ctx context.Context, userID uuid.UUID, in SaveRatingInput) (rating.EmployeeRating, error)
	SubmitRating(ctx context.Context, userID uuid.UUID, ratingID uuid.UUID) error
	ListMine(ctx context.Context, userID uuid.UUID) ([]rating.EmployeeRating, error)
}

type Rating struct {
	ratings       repository.RatingRepository
	taxonomy      repository.TaxonomyRepository
	notifications repository.NotificationRepository
	cache         *cache.Redis
}

func NewRatingUsecase(
	ratings repository.RatingRepository,
	taxonomy repository.TaxonomyRepository,
	notifications repository.NotificationRepository,
	rc *cache.Redis,
) *Rating {
	return &Rating{ratings: ratings, taxonomy: taxonomy, notifications: notifications, cache: rc}
}

// SaveRating upserts the user's single current rating row for the (skill,
// subskill) key. Saving over a rejected rating starts a fresh approval
// cycle on the same row.
func (u *Rating) SaveRating(ctx context.Context, userID uuid.UUID, in SaveRatingInput) (rating.EmployeeRating, error) {
	if in.SkillID == uuid.Nil {
		return rating.EmployeeRating{}, ErrInvalidInput
	}
	if !in.Rating.Valid() {
		return rating.EmployeeRating{}, ErrInvalidRatingLevel
	}

	exists, err := u.taxonomy.SkillExists(ctx, in.SkillID)
	if err != nil {
		return rating.EmployeeRating{}, ErrInternal
	}
	if !exists {
		return rating.EmployeeRating{}, ErrSkillNotFound
	}

	status := rating.StatusDraft
	if in.Submit {
		status = rating.StatusPending
	}

	saved, err := u.ratings.Upsert(ctx, rating.EmployeeRating{
		ID:          uuid.New(),
		UserID:      userID,
		SkillID:     in.SkillID,
		SubskillID:  in.SubskillID,
		Rating:      in.Rating,
		Status:      status,
		SelfComment: in.SelfComment,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return rating.EmployeeRating{}, ErrSkillNotFound
		}
		return rating.EmployeeRating{}, ErrInternal
	}

	_ = u.cache.InvalidateUserProgress(ctx, userID.String())
	if saved.Status == rating.StatusPending {
		u.notifySubmitted(ctx, userID)
	}
	ws.NotifyChanged("employee_ratings", saved.ID.String(), ws.OpInsert)
	return saved, nil
}

func (u *Rating) SubmitRating(ctx context.Context, userID uuid.UUID, ratingID uuid.UUID) error {
	if ratingID == uuid.Nil {
		return ErrInvalidInput
	}

	if err := u.ratings.Submit(ctx, ratingID, userID); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return ErrRatingNotFound
		}
		return ErrInternal
	}

	u.notifySubmitted(ctx, userID)
	ws.NotifyChanged("employee_ratings", ratingID.String(), ws.OpUpdate)
	return nil
}

// Best effort: the submission stands even when the notification write fails.
func (u *Rating) notifySubmitted(ctx context.Context, userID uuid.UUID) {
	_ = u.notifications.Create(ctx, repository.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    "rating_submitted",
		Title:   "Rating submitted",
		Message: "Your rating is awaiting approval.",
	})
}

func (u *Rating) ListMine(ctx context.Context, userID uuid.UUID) ([]rating.EmployeeRating, error) {
	items, err := u.ratings.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
