package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRatingNotFound = errors.New("rating not found")

// ApprovedScope selects approved ratings the way the match calculator
// consumes them: exact subskill rows in SubskillIDs, plus skill-level rows
// (subskill_id null) for skills in SkillIDs.
type ApprovedScope struct {
	UserID      *uuid.UUID
	SkillIDs    []uuid.UUID
	SubskillIDs []uuid.UUID
}

type RatingRepository interface {
	Upsert(ctx context.Context, r rating.EmployeeRating) (rating.EmployeeRating, error)
	FindByID(ctx context.Context, id uuid.UUID) (rating.EmployeeRating, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]rating.EmployeeRating, error)
	FindByUserAndSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]rating.EmployeeRating, error)
	FindByStatus(ctx context.Context, status rating.Status) ([]rating.EmployeeRating, error)
	SetStatus(ctx context.Context, id uuid.UUID, status rating.Status, approverID uuid.UUID, comment string) error
	Submit(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindApprovedForScope(ctx context.Context, scope ApprovedScope) ([]matching.ApprovedRating, error)
}

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

const ratingColumns = `id, user_id, skill_id, subskill_id, rating, status,
	COALESCE(self_comment, ''), COALESCE(approver_comment, ''),
	approved_by, approved_at, created_at, updated_at`

// Upsert writes the single current rating row for (user, skill, subskill).
// Re-rating after rejection reuses the same key and resets the approval
// fields, so submitting the same payload twice leaves exactly one row.
func (r *PostgresRatingRepository) Upsert(ctx context.Context, er rating.EmployeeRating) (rating.EmployeeRating, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO employee_ratings (id, user_id, skill_id, subskill_id, rating, status, self_comment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, skill_id, COALESCE(subskill_id, '00000000-0000-0000-0000-000000000000'::uuid))
		 DO UPDATE SET
			rating = EXCLUDED.rating,
			status = EXCLUDED.status,
			self_comment = EXCLUDED.self_comment,
			approver_comment = NULL,
			approved_by = NULL,
			approved_at = NULL,
			updated_at = now()
		 RETURNING `+ratingColumns,
		er.ID, er.UserID, er.SkillID, er.SubskillID, er.Rating, er.Status, er.SelfComment)

	return scanRating(row)
}

func (r *PostgresRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (rating.EmployeeRating, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+ratingColumns+` FROM employee_ratings WHERE id = $1`, id)
	out, err := scanRating(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return rating.EmployeeRating{}, ErrRatingNotFound
		}
		return rating.EmployeeRating{}, err
	}
	return out, nil
}

func (r *PostgresRatingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]rating.EmployeeRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ratingColumns+` FROM employee_ratings WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRatings(rows)
}

func (r *PostgresRatingRepository) FindByUserAndSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]rating.EmployeeRating, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+ratingColumns+` FROM employee_ratings
		 WHERE user_id = $1 AND skill_id = ANY($2)`,
		userID, skillIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRatings(rows)
}

func (r *PostgresRatingRepository) FindByStatus(ctx context.Context, status rating.Status) ([]rating.EmployeeRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ratingColumns+` FROM employee_ratings WHERE status = $1 ORDER BY updated_at ASC`,
		status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRatings(rows)
}

// SetStatus moves a pending rating to approved or rejected. Rows not in
// pending are left untouched and reported as not found, which keeps
// approve/reject races idempotent.
func (r *PostgresRatingRepository) SetStatus(ctx context.Context, id uuid.UUID, status rating.Status, approverID uuid.UUID, comment string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE employee_ratings
		 SET status = $2, approver_comment = $3, approved_by = $4, approved_at = $5, updated_at = now()
		 WHERE id = $1 AND status = 'pending'`,
		id, status, comment, approverID, time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRatingNotFound
	}
	return nil
}

// Submit moves the owner's draft rating to pending.
func (r *PostgresRatingRepository) Submit(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE employee_ratings SET status = 'pending', updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND status = 'draft'`,
		id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *PostgresRatingRepository) FindApprovedForScope(ctx context.Context, scope ApprovedScope) ([]matching.ApprovedRating, error) {
	query := `SELECT user_id, skill_id, subskill_id, rating FROM employee_ratings
		 WHERE status = 'approved'
		 AND (subskill_id = ANY($1) OR (subskill_id IS NULL AND skill_id = ANY($2)))`
	args := []any{scope.SubskillIDs, scope.SkillIDs}
	if scope.UserID != nil {
		query += ` AND user_id = $3`
		args = append(args, *scope.UserID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.ApprovedRating, 0)
	for rows.Next() {
		var ar matching.ApprovedRating
		if err := rows.Scan(&ar.UserID, &ar.SkillID, &ar.SubskillID, &ar.Rating); err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRating(row database.Row) (rating.EmployeeRating, error) {
	var er rating.EmployeeRating
	err := row.Scan(&er.ID, &er.UserID, &er.SkillID, &er.SubskillID, &er.Rating, &er.Status,
		&er.SelfComment, &er.ApproverComment, &er.ApprovedBy, &er.ApprovedAt, &er.CreatedAt, &er.UpdatedAt)
	return er, err
}

func collectRatings(rows database.Rows) ([]rating.EmployeeRating, error) {
	out := make([]rating.EmployeeRating, 0)
	for rows.Next() {
		er, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, er)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
