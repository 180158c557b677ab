package repository

import (
	"context"
	"errors"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/allocation"
	"skill-matrix/internal/domain/project"

	"github.com/google/uuid"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

// AdmitFunc decides admission given the user's current active-project
// assignments. It runs inside the repository's transaction while the user's
// profile row is locked, so two concurrent requests cannot both read the
// same capacity.
type AdmitFunc func(existing []allocation.Assignment) error

type AssignmentRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]project.Assignment, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]allocation.Assignment, error)
	CreateGuarded(ctx context.Context, a project.Assignment, admit AdmitFunc) error
	UpdateAllocationGuarded(ctx context.Context, id uuid.UUID, percentage int, admit AdmitFunc) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresAssignmentRepository struct {
	db database.DB
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

func (r *PostgresAssignmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]project.Assignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, user_id, allocation_percentage, assigned_by, created_at
		 FROM project_assignments WHERE project_id = $1 ORDER BY created_at ASC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Assignment, 0)
	for rows.Next() {
		var a project.Assignment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.AllocationPercentage, &a.AssignedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Only assignments on active projects count toward a user's allocation.
const activeAssignmentsQuery = `
	SELECT pa.id, pa.project_id, pa.allocation_percentage
	FROM project_assignments pa
	JOIN projects p ON p.id = pa.project_id
	WHERE pa.user_id = $1 AND p.status = 'active'`

func (r *PostgresAssignmentRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]allocation.Assignment, error) {
	rows, err := r.db.Query(ctx, activeAssignmentsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllocations(rows)
}

// CreateGuarded serializes on the user's profile row, runs the admission
// decision over the active assignments read under that lock, and inserts
// only if it passes, all in one transaction. This is the server-side fix
// for the read-then-write capacity race.
func (r *PostgresAssignmentRepository) CreateGuarded(ctx context.Context, a project.Assignment, admit AdmitFunc) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	existing, err := lockUserAllocations(ctx, tx, a.UserID)
	if err != nil {
		return err
	}

	if err := admit(existing); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO project_assignments (id, project_id, user_id, allocation_percentage, assigned_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.ProjectID, a.UserID, a.AllocationPercentage, a.AssignedBy)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresAssignmentRepository) UpdateAllocationGuarded(ctx context.Context, id uuid.UUID, percentage int, admit AdmitFunc) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID uuid.UUID
	row := tx.QueryRow(ctx, `SELECT user_id FROM project_assignments WHERE id = $1 FOR UPDATE`, id)
	if err := row.Scan(&userID); err != nil {
		return ErrAssignmentNotFound
	}

	existing, err := lockUserAllocations(ctx, tx, userID)
	if err != nil {
		return err
	}

	if err := admit(existing); err != nil {
		return err
	}

	n, err := tx.Exec(ctx,
		`UPDATE project_assignments SET allocation_percentage = $2 WHERE id = $1`,
		id, percentage)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssignmentNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM project_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// lockUserAllocations takes the per-user admission mutex and returns the
// allocations the decision must count. Locking the assignment rows alone is
// not enough: a user with no rows would lock nothing, and a row inserted by
// a competing transaction is invisible to a blocked FOR UPDATE under READ
// COMMITTED. The profile row always exists and every admission locks it
// first, so concurrent decisions for one user run strictly one at a time.
func lockUserAllocations(ctx context.Context, tx database.Tx, userID uuid.UUID) ([]allocation.Assignment, error) {
	var locked uuid.UUID
	row := tx.QueryRow(ctx, `SELECT id FROM profiles WHERE id = $1 FOR UPDATE`, userID)
	if err := row.Scan(&locked); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, activeAssignmentsQuery, userID)
	if err != nil {
		return nil, err
	}
	existing, err := collectAllocations(rows)
	rows.Close()
	return existing, err
}

func collectAllocations(rows database.Rows) ([]allocation.Assignment, error) {
	out := make([]allocation.Assignment, 0)
	for rows.Next() {
		var a allocation.Assignment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Percentage); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
