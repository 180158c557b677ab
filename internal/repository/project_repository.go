package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/project"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidTransition = errors.New("invalid project status transition")
)

type ProjectRepository interface {
	Create(ctx context.Context, p project.Project, reqs []project.RequiredSkill, assigns []project.Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (project.Project, error)
	List(ctx context.Context, status *project.Status) ([]project.Project, error)
	Update(ctx context.Context, p project.Project) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to project.Status, actorID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	RequiredSkills(ctx context.Context, projectID uuid.UUID) ([]project.RequiredSkill, error)
	AddRequiredSkill(ctx context.Context, rs project.RequiredSkill) error
	RemoveRequiredSkill(ctx context.Context, id uuid.UUID) error

	AddValidation(ctx context.Context, v project.SkillValidation) error
	Validations(ctx context.Context, projectID uuid.UUID) ([]project.SkillValidation, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, name, COALESCE(description, ''), status, start_date, end_date,
	created_by, approved_by, approved_at, created_at, updated_at`

// Create inserts the project together with its required skills and initial
// assignments in one transaction, so a failure in a later step rolls back the
// earlier writes instead of leaving a half-created project.
func (r *PostgresProjectRepository) Create(ctx context.Context, p project.Project, reqs []project.RequiredSkill, assigns []project.Assignment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO projects (id, name, description, status, start_date, end_date, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate, p.CreatedBy)
	if err != nil {
		return err
	}

	for _, rs := range reqs {
		_, err = tx.Exec(ctx,
			`INSERT INTO project_required_skills (id, project_id, skill_id, subskill_id, required_rating)
			 VALUES ($1, $2, $3, $4, $5)`,
			rs.ID, p.ID, rs.SkillID, rs.SubskillID, rs.RequiredRating)
		if err != nil {
			return err
		}
	}

	for _, a := range assigns {
		_, err = tx.Exec(ctx,
			`INSERT INTO project_assignments (id, project_id, user_id, allocation_percentage, assigned_by)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.ID, p.ID, a.UserID, a.AllocationPercentage, a.AssignedBy)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context, status *project.Status) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) Update(ctx context.Context, p project.Project) error {
	n, err := r.db.Exec(ctx,
		`UPDATE projects SET name = $2, description = $3, start_date = $4, end_date = $5, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.StartDate, p.EndDate)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// UpdateStatus performs the transition with the expected source status in the
// predicate, so concurrent transitions cannot both win.
func (r *PostgresProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to project.Status, actorID uuid.UUID) error {
	var approvedBy any
	var approvedAt any
	if from == project.StatusAwaitingApproval && to == project.StatusActive {
		approvedBy = actorID
		approvedAt = time.Now().UTC()
	}

	n, err := r.db.Exec(ctx,
		`UPDATE projects
		 SET status = $3,
			approved_by = COALESCE($4, approved_by),
			approved_at = COALESCE($5, approved_at),
			updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, from, to, approvedBy, approvedAt)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) RequiredSkills(ctx context.Context, projectID uuid.UUID) ([]project.RequiredSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, skill_id, subskill_id, required_rating
		 FROM project_required_skills WHERE project_id = $1`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.RequiredSkill, 0)
	for rows.Next() {
		var rs project.RequiredSkill
		if err := rows.Scan(&rs.ID, &rs.ProjectID, &rs.SkillID, &rs.SubskillID, &rs.RequiredRating); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) AddRequiredSkill(ctx context.Context, rs project.RequiredSkill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_required_skills (id, project_id, skill_id, subskill_id, required_rating)
		 VALUES ($1, $2, $3, $4, $5)`,
		rs.ID, rs.ProjectID, rs.SkillID, rs.SubskillID, rs.RequiredRating)
	return err
}

func (r *PostgresProjectRepository) RemoveRequiredSkill(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM project_required_skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) AddValidation(ctx context.Context, v project.SkillValidation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_skill_validations (id, project_id, user_id, skill_id, subskill_id, validated_by, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.ProjectID, v.UserID, v.SkillID, v.SubskillID, v.ValidatedBy, v.Notes)
	return err
}

func (r *PostgresProjectRepository) Validations(ctx context.Context, projectID uuid.UUID) ([]project.SkillValidation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, user_id, skill_id, subskill_id, validated_by, COALESCE(notes, ''), created_at
		 FROM project_skill_validations WHERE project_id = $1 ORDER BY created_at DESC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.SkillValidation, 0)
	for rows.Next() {
		var v project.SkillValidation
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.UserID, &v.SkillID, &v.SubskillID, &v.ValidatedBy, &v.Notes, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProject(row database.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate,
		&p.CreatedBy, &p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
