package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]repository.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type Notifications struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) *Notifications {
	return &Notifications{repo: repo}
}

func (u *Notifications) ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]repository.Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// MarkRead scopes the update to the caller, so users cannot touch each
// other's notifications.
func (u *Notifications) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil || id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Notifications) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.MarkAllRead(ctx, userID); err != nil {
		return ErrInternal
	}
	return nil
}
