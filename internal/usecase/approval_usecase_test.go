package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

func TestApprovalUsecase_Approve_SelfApprovalForbidden(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	ratings := &mockRatingRepo{byID: map[uuid.UUID]rating.EmployeeRating{
		id: {ID: id, UserID: owner, Status: rating.StatusPending, Rating: rating.LevelHigh},
	}}
	uc := NewApprovalUsecase(ratings, &mockNotificationRepo{}, &mockGamificationRepo{}, nil)

	err := uc.Approve(context.Background(), owner, id, "looks right")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(ratings.setStatus) != 0 {
		t.Fatalf("status must not change on self-approval")
	}
}

func TestApprovalUsecase_Reject_RequiresComment(t *testing.T) {
	uc := NewApprovalUsecase(&mockRatingRepo{}, &mockNotificationRepo{}, &mockGamificationRepo{}, nil)
	err := uc.Reject(context.Background(), uuid.New(), uuid.New(), "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApprovalUsecase_Approve_AwardsPointsAndNotifies(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	ratings := &mockRatingRepo{byID: map[uuid.UUID]rating.EmployeeRating{
		id: {ID: id, UserID: owner, Status: rating.StatusPending, Rating: rating.LevelHigh},
	}}
	notifications := &mockNotificationRepo{}
	gamification := &mockGamificationRepo{}
	uc := NewApprovalUsecase(ratings, notifications, gamification, nil)

	if err := uc.Approve(context.Background(), uuid.New(), id, "solid work"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ratings.setStatus) != 1 || ratings.setStatus[0] != rating.StatusApproved {
		t.Fatalf("expected one approved transition, got %v", ratings.setStatus)
	}
	if gamification.points != rating.LevelHigh.Points() {
		t.Fatalf("expected %d points, got %d", rating.LevelHigh.Points(), gamification.points)
	}
	if len(notifications.created) != 1 || notifications.created[0].UserID != owner {
		t.Fatalf("expected a notification for the rating owner")
	}
}

func TestApprovalUsecase_Reject_NoPoints(t *testing.T) {
	id := uuid.New()
	ratings := &mockRatingRepo{byID: map[uuid.UUID]rating.EmployeeRating{
		id: {ID: id, UserID: uuid.New(), Status: rating.StatusPending, Rating: rating.LevelMedium},
	}}
	gamification := &mockGamificationRepo{}
	uc := NewApprovalUsecase(ratings, &mockNotificationRepo{}, gamification, nil)

	if err := uc.Reject(context.Background(), uuid.New(), id, "needs evidence"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gamification.points != 0 {
		t.Fatalf("rejection must not award points")
	}
}

func TestApprovalUsecase_Approve_UnknownRating(t *testing.T) {
	uc := NewApprovalUsecase(&mockRatingRepo{byID: map[uuid.UUID]rating.EmployeeRating{}}, &mockNotificationRepo{}, &mockGamificationRepo{}, nil)
	err := uc.Approve(context.Background(), uuid.New(), uuid.New(), "")
	if !errors.Is(err, ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}

func TestApprovalUsecase_History_MergesDecisionsNewestFirst(t *testing.T) {
	approver := uuid.New()
	older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	ratings := &mockRatingRepo{byStatus: map[rating.Status][]rating.EmployeeRating{
		rating.StatusApproved: {
			{ID: uuid.New(), UserID: uuid.New(), Status: rating.StatusApproved, ApprovedBy: &approver, UpdatedAt: older},
		},
		rating.StatusRejected: {
			{ID: uuid.New(), UserID: uuid.New(), Status: rating.StatusRejected, ApprovedBy: &approver, UpdatedAt: newer},
		},
	}}
	uc := NewApprovalUsecase(ratings, &mockNotificationRepo{}, &mockGamificationRepo{}, nil)

	items, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected both decisions, got %d", len(items))
	}
	if items[0].Status != rating.StatusRejected || items[1].Status != rating.StatusApproved {
		t.Fatalf("expected newest decision first, got %s then %s", items[0].Status, items[1].Status)
	}
	if items[0].ApprovedBy == nil || *items[0].ApprovedBy != approver {
		t.Fatalf("expected approver attribution on history rows")
	}
}

func TestApprovalUsecase_History_Empty(t *testing.T) {
	uc := NewApprovalUsecase(&mockRatingRepo{byStatus: map[rating.Status][]rating.EmployeeRating{}}, &mockNotificationRepo{}, &mockGamificationRepo{}, nil)
	items, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty history, got %d", len(items))
	}
}
