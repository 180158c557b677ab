package repository

import (
	"context"
	"errors"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/taxonomy"

	"github.com/google/uuid"
)

var ErrTaxonomyNotFound = errors.New("taxonomy item not found")

type TaxonomyRepository interface {
	LoadTaxonomy(ctx context.Context) (taxonomy.Taxonomy, error)

	CreateCategory(ctx context.Context, c taxonomy.SkillCategory) error
	UpdateCategory(ctx context.Context, c taxonomy.SkillCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateSkill(ctx context.Context, s taxonomy.Skill) error
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	SkillExists(ctx context.Context, id uuid.UUID) (bool, error)

	CreateSubskill(ctx context.Context, s taxonomy.Subskill) error
	DeleteSubskill(ctx context.Context, id uuid.UUID) error
	SubskillsBySkillIDs(ctx context.Context, skillIDs []uuid.UUID) ([]taxonomy.Subskill, error)
}

type PostgresTaxonomyRepository struct {
	db database.DB
}

func NewPostgresTaxonomyRepository(db database.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

func (r *PostgresTaxonomyRepository) LoadTaxonomy(ctx context.Context) (taxonomy.Taxonomy, error) {
	var t taxonomy.Taxonomy

	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), COALESCE(color, ''), created_at
		 FROM skill_categories ORDER BY name ASC`)
	if err != nil {
		return taxonomy.Taxonomy{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c taxonomy.SkillCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt); err != nil {
			return taxonomy.Taxonomy{}, err
		}
		t.Categories = append(t.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return taxonomy.Taxonomy{}, err
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT id, category_id, name, COALESCE(description, ''), created_at
		 FROM skills ORDER BY name ASC`)
	if err != nil {
		return taxonomy.Taxonomy{}, err
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s taxonomy.Skill
		if err := skillRows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return taxonomy.Taxonomy{}, err
		}
		t.Skills = append(t.Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return taxonomy.Taxonomy{}, err
	}

	subRows, err := r.db.Query(ctx,
		`SELECT id, skill_id, name, COALESCE(description, ''), created_at
		 FROM subskills ORDER BY name ASC`)
	if err != nil {
		return taxonomy.Taxonomy{}, err
	}
	defer subRows.Close()
	for subRows.Next() {
		var s taxonomy.Subskill
		if err := subRows.Scan(&s.ID, &s.SkillID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return taxonomy.Taxonomy{}, err
		}
		t.Subskills = append(t.Subskills, s)
	}
	if err := subRows.Err(); err != nil {
		return taxonomy.Taxonomy{}, err
	}

	return t, nil
}

func (r *PostgresTaxonomyRepository) CreateCategory(ctx context.Context, c taxonomy.SkillCategory) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_categories (id, name, description, color) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Description, c.Color)
	return err
}

func (r *PostgresTaxonomyRepository) UpdateCategory(ctx context.Context, c taxonomy.SkillCategory) error {
	n, err := r.db.Exec(ctx,
		`UPDATE skill_categories SET name = $2, description = $3, color = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Color)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *PostgresTaxonomyRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM skill_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *PostgresTaxonomyRepository) CreateSkill(ctx context.Context, s taxonomy.Skill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, category_id, name, description) VALUES ($1, $2, $3, $4)`,
		s.ID, s.CategoryID, s.Name, s.Description)
	return err
}

func (r *PostgresTaxonomyRepository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *PostgresTaxonomyRepository) SkillExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresTaxonomyRepository) CreateSubskill(ctx context.Context, s taxonomy.Subskill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subskills (id, skill_id, name, description) VALUES ($1, $2, $3, $4)`,
		s.ID, s.SkillID, s.Name, s.Description)
	return err
}

func (r *PostgresTaxonomyRepository) DeleteSubskill(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM subskills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *PostgresTaxonomyRepository) SubskillsBySkillIDs(ctx context.Context, skillIDs []uuid.UUID) ([]taxonomy.Subskill, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, skill_id, name, COALESCE(description, ''), created_at
		 FROM subskills WHERE skill_id = ANY($1) ORDER BY name ASC`,
		skillIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]taxonomy.Subskill, 0)
	for rows.Next() {
		var s taxonomy.Subskill
		if err := rows.Scan(&s.ID, &s.SkillID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
