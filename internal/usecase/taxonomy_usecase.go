package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/domain/taxonomy"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/ws"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
}

type CreateSkillInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
}

type CreateSubskillInput struct {
	SkillID     uuid.UUID
	Name        string
	Description string
}

type TaxonomyUsecase interface {
	LoadTaxonomy(ctx context.Context) (taxonomy.Taxonomy, error)
	CreateCategory(ctx context.Context, in CreateCategoryInput) (taxonomy.SkillCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in CreateCategoryInput) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateSkill(ctx context.Context, in CreateSkillInput) (taxonomy.Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	CreateSubskill(ctx context.Context, in CreateSubskillInput) (taxonomy.Subskill, error)
	DeleteSubskill(ctx context.Context, id uuid.UUID) error
}

type Taxonomy struct {
	repo  repository.TaxonomyRepository
	cache *cache.Redis
}

func NewTaxonomyUsecase(repo repository.TaxonomyRepository, rc *cache.Redis) *Taxonomy {
	return &Taxonomy{repo: repo, cache: rc}
}

func (u *Taxonomy) LoadTaxonomy(ctx context.Context) (taxonomy.Taxonomy, error) {
	var cached taxonomy.Taxonomy
	if hit, err := u.cache.GetJSON(ctx, cache.KeyTaxonomy, &cached); err == nil && hit {
		return cached, nil
	}

	t, err := u.repo.LoadTaxonomy(ctx)
	if err != nil {
		return taxonomy.Taxonomy{}, ErrInternal
	}

	_ = u.cache.SetJSON(ctx, cache.KeyTaxonomy, t, 0)
	return t, nil
}

func (u *Taxonomy) CreateCategory(ctx context.Context, in CreateCategoryInput) (taxonomy.SkillCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return taxonomy.SkillCategory{}, ErrInvalidInput
	}

	c := taxonomy.SkillCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       strings.TrimSpace(in.Color),
	}
	if err := u.repo.CreateCategory(ctx, c); err != nil {
		return taxonomy.SkillCategory{}, ErrInternal
	}

	u.invalidate(ctx, "skill_categories", c.ID, ws.OpInsert)
	return c, nil
}

func (u *Taxonomy) UpdateCategory(ctx context.Context, id uuid.UUID, in CreateCategoryInput) error {
	name := strings.TrimSpace(in.Name)
	if id == uuid.Nil || name == "" {
		return ErrInvalidInput
	}

	err := u.repo.UpdateCategory(ctx, taxonomy.SkillCategory{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       strings.TrimSpace(in.Color),
	})
	if err != nil {
		if errors.Is(err, repository.ErrTaxonomyNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u.invalidate(ctx, "skill_categories", id, ws.OpUpdate)
	return nil
}

// DeleteCategory removes the category together with its skills, subskills
// and ratings via the schema's cascades.
func (u *Taxonomy) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaxonomyNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u.invalidate(ctx, "skill_categories", id, ws.OpDelete)
	return nil
}

func (u *Taxonomy) CreateSkill(ctx context.Context, in CreateSkillInput) (taxonomy.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if in.CategoryID == uuid.Nil || name == "" {
		return taxonomy.Skill{}, ErrInvalidInput
	}

	s := taxonomy.Skill{
		ID:          uuid.New(),
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := u.repo.CreateSkill(ctx, s); err != nil {
		if isForeignKeyViolation(err) {
			return taxonomy.Skill{}, ErrNotFound
		}
		return taxonomy.Skill{}, ErrInternal
	}

	u.invalidate(ctx, "skills", s.ID, ws.OpInsert)
	return s, nil
}

func (u *Taxonomy) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeleteSkill(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaxonomyNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u.invalidate(ctx, "skills", id, ws.OpDelete)
	return nil
}

func (u *Taxonomy) CreateSubskill(ctx context.Context, in CreateSubskillInput) (taxonomy.Subskill, error) {
	name := strings.TrimSpace(in.Name)
	if in.SkillID == uuid.Nil || name == "" {
		return taxonomy.Subskill{}, ErrInvalidInput
	}

	s := taxonomy.Subskill{
		ID:          uuid.New(),
		SkillID:     in.SkillID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := u.repo.CreateSubskill(ctx, s); err != nil {
		if isForeignKeyViolation(err) {
			return taxonomy.Subskill{}, ErrNotFound
		}
		return taxonomy.Subskill{}, ErrInternal
	}

	u.invalidate(ctx, "subskills", s.ID, ws.OpInsert)
	return s, nil
}

func (u *Taxonomy) DeleteSubskill(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeleteSubskill(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaxonomyNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u.invalidate(ctx, "subskills", id, ws.OpDelete)
	return nil
}

func (u *Taxonomy) invalidate(ctx context.Context, table string, id uuid.UUID, op string) {
	_ = u.cache.InvalidateTaxonomy(ctx)
	ws.NotifyChanged(table, id.String(), op)
}
