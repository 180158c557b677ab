package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/ws"

	"github.com/google/uuid"
)

type ApprovalUsecase interface {
	ListPending(ctx context.Context) ([]rating.EmployeeRating, error)
	History(ctx context.Context) ([]rating.EmployeeRating, error)
	Approve(ctx context.Context, approverID uuid.UUID, ratingID uuid.UUID, comment string) error
	Reject(ctx context.Context, approverID uuid.UUID, ratingID uuid.UUID, comment string) error
}

type Approval struct {
	ratings       repository.RatingRepository
	notifications repository.NotificationRepository
	gamification  repository.GamificationRepository
	cache         *cache.Redis
}

func NewApprovalUsecase(
	ratings repository.RatingRepository,
	notifications repository.NotificationRepository,
	gamification repository.GamificationRepository,
	rc *cache.Redis,
) *Approval {
	return &Approval{ratings: ratings, notifications: notifications, gamification: gamification, cache: rc}
}

func (u *Approval) ListPending(ctx context.Context) ([]rating.EmployeeRating, error) {
	items, err := u.ratings.FindByStatus(ctx, rating.StatusPending)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// History returns every decided rating, most recent decision first. Rows
// carry approver_comment, approved_by and approved_at, so callers can group
// decisions per employee or per approver.
func (u *Approval) History(ctx context.Context) ([]rating.EmployeeRating, error) {
	approved, err := u.ratings.FindByStatus(ctx, rating.StatusApproved)
	if err != nil {
		return nil, ErrInternal
	}
	rejected, err := u.ratings.FindByStatus(ctx, rating.StatusRejected)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]rating.EmployeeRating, 0, len(approved)+len(rejected))
	out = append(out, approved...)
	out = append(out, rejected...)
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (u *Approval) Approve(ctx context.Context, approverID uuid.UUID, ratingID uuid.UUID, comment string) error {
	return u.decide(ctx, approverID, ratingID, rating.StatusApproved, comment)
}

func (u *Approval) Reject(ctx context.Context, approverID uuid.UUID, ratingID uuid.UUID, comment string) error {
	if strings.TrimSpace(comment) == "" {
		// Rejections carry a reason back to the employee.
		return ErrInvalidInput
	}
	return u.decide(ctx, approverID, ratingID, rating.StatusRejected, comment)
}

func (u *Approval) decide(ctx context.Context, approverID uuid.UUID, ratingID uuid.UUID, status rating.Status, comment string) error {
	if ratingID == uuid.Nil {
		return ErrInvalidInput
	}

	target, err := u.ratings.FindByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return ErrRatingNotFound
		}
		return ErrInternal
	}
	if target.UserID == approverID {
		return ErrForbidden
	}

	if err := u.ratings.SetStatus(ctx, ratingID, status, approverID, comment); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return ErrRatingNotFound
		}
		return ErrInternal
	}

	metrics.IncrementRatingDecision(string(status))

	if status == rating.StatusApproved {
		if _, err := u.gamification.AddPoints(ctx, target.UserID, target.Rating.Points()); err == nil {
			_ = u.gamification.GrantAchievement(ctx, target.UserID, "first_approved_rating")
		}
	}

	title := "Rating approved"
	if status == rating.StatusRejected {
		title = "Rating rejected"
	}
	_ = u.notifications.Create(ctx, repository.Notification{
		ID:      uuid.New(),
		UserID:  target.UserID,
		Type:    "rating_" + string(status),
		Title:   title,
		Message: comment,
	})

	_ = u.cache.InvalidateUserProgress(ctx, target.UserID.String())
	ws.NotifyChanged("employee_ratings", ratingID.String(), ws.OpUpdate)
	return nil
}
