package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

func TestRatingUsecase_SaveRating_InvalidLevel(t *testing.T) {
	uc := NewRatingUsecase(&mockRatingRepo{}, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)
	_, err := uc.SaveRating(context.Background(), uuid.New(), SaveRatingInput{
		SkillID: uuid.New(),
		Rating:  rating.Level("extreme"),
	})
	if !errors.Is(err, ErrInvalidRatingLevel) {
		t.Fatalf("expected ErrInvalidRatingLevel, got %v", err)
	}
}

func TestRatingUsecase_SaveRating_UnknownSkill(t *testing.T) {
	uc := NewRatingUsecase(&mockRatingRepo{}, &mockTaxonomyRepo{skillExists: false}, &mockNotificationRepo{}, nil)
	_, err := uc.SaveRating(context.Background(), uuid.New(), SaveRatingInput{
		SkillID: uuid.New(),
		Rating:  rating.LevelHigh,
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestRatingUsecase_SaveRating_DraftByDefault(t *testing.T) {
	repo := &mockRatingRepo{}
	uc := NewRatingUsecase(repo, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)

	saved, err := uc.SaveRating(context.Background(), uuid.New(), SaveRatingInput{
		SkillID: uuid.New(),
		Rating:  rating.LevelMedium,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if saved.Status != rating.StatusDraft {
		t.Fatalf("expected draft, got %s", saved.Status)
	}
	if repo.upserted == nil {
		t.Fatalf("expected upsert call")
	}
}

func TestRatingUsecase_SaveRating_SubmitSkipsDraft(t *testing.T) {
	repo := &mockRatingRepo{}
	uc := NewRatingUsecase(repo, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)

	sub := uuid.New()
	saved, err := uc.SaveRating(context.Background(), uuid.New(), SaveRatingInput{
		SkillID:    uuid.New(),
		SubskillID: &sub,
		Rating:     rating.LevelLow,
		Submit:     true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if saved.Status != rating.StatusPending {
		t.Fatalf("expected pending, got %s", saved.Status)
	}
	if saved.SubskillID == nil || *saved.SubskillID != sub {
		t.Fatalf("subskill id lost on save")
	}
}

func TestRatingUsecase_SubmitRating_NotOwner(t *testing.T) {
	id := uuid.New()
	repo := &mockRatingRepo{byID: map[uuid.UUID]rating.EmployeeRating{
		id: {ID: id, UserID: uuid.New(), Status: rating.StatusDraft},
	}}
	uc := NewRatingUsecase(repo, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)

	err := uc.SubmitRating(context.Background(), uuid.New(), id)
	if !errors.Is(err, ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound for foreign rating, got %v", err)
	}
}

func TestRatingUsecase_SubmitRating_Draft(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	repo := &mockRatingRepo{byID: map[uuid.UUID]rating.EmployeeRating{
		id: {ID: id, UserID: owner, Status: rating.StatusDraft},
	}}
	uc := NewRatingUsecase(repo, &mockTaxonomyRepo{skillExists: true}, &mockNotificationRepo{}, nil)

	if err := uc.SubmitRating(context.Background(), owner, id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
