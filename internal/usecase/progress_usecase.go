package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/domain/progress"
	"skill-matrix/internal/domain/taxonomy"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryProgress pairs a category with the user's summary for it.
type CategoryProgress struct {
	CategoryID   uuid.UUID
	CategoryName string
	progress.Summary
}

type ProgressUsecase interface {
	CategorySummary(ctx context.Context, userID, categoryID uuid.UUID) (CategoryProgress, error)
	Overview(ctx context.Context, userID uuid.UUID) ([]CategoryProgress, error)
}

type Progress struct {
	taxonomy repository.TaxonomyRepository
	ratings  repository.RatingRepository
	cache    *cache.Redis
}

func NewProgressUsecase(taxonomyRepo repository.TaxonomyRepository, ratings repository.RatingRepository, rc *cache.Redis) *Progress {
	return &Progress{taxonomy: taxonomyRepo, ratings: ratings, cache: rc}
}

// CategorySummary computes one category's progress for a user. The result is
// cached per (user, category); rating approvals and taxonomy edits invalidate
// the key.
func (u *Progress) CategorySummary(ctx context.Context, userID, categoryID uuid.UUID) (CategoryProgress, error) {
	if userID == uuid.Nil || categoryID == uuid.Nil {
		return CategoryProgress{}, ErrInvalidInput
	}

	key := cache.KeyProgress(userID.String(), categoryID.String())
	var cached CategoryProgress
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	t, err := u.taxonomy.LoadTaxonomy(ctx)
	if err != nil {
		return CategoryProgress{}, ErrInternal
	}

	cp, err := u.summarize(ctx, t, userID, categoryID)
	if err != nil {
		return CategoryProgress{}, err
	}

	_ = u.cache.SetJSON(ctx, key, cp, 0)
	return cp, nil
}

// Overview returns the user's summary for every category, in taxonomy order.
func (u *Progress) Overview(ctx context.Context, userID uuid.UUID) ([]CategoryProgress, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	t, err := u.taxonomy.LoadTaxonomy(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]CategoryProgress, 0, len(t.Categories))
	for _, c := range t.Categories {
		cp, err := u.summarize(ctx, t, userID, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func (u *Progress) summarize(ctx context.Context, t taxonomy.Taxonomy, userID, categoryID uuid.UUID) (CategoryProgress, error) {
	var cat *taxonomy.SkillCategory
	for i := range t.Categories {
		if t.Categories[i].ID == categoryID {
			cat = &t.Categories[i]
			break
		}
	}
	if cat == nil {
		return CategoryProgress{}, ErrCategoryNotFound
	}

	ratings, err := u.ratings.FindByUserAndSkills(ctx, userID, t.SkillIDs(categoryID))
	if err != nil {
		return CategoryProgress{}, ErrInternal
	}

	return CategoryProgress{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Summary:      progress.Aggregate(t.LeafCount(categoryID), ratings),
	}, nil
}
