package postgres

import (
	"context"
	"database/sql"
	"errors"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, email, password_hash, COALESCE(full_name, ''), role, is_active, created_at, updated_at`

func (r *ProfileRepository) Create(ctx context.Context, p user.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, email, password_hash, full_name, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Email, p.PasswordHash, p.FullName, p.Role, p.IsActive)
	return err
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
	return scanProfile(row)
}

func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]user.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY full_name ASC, email ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
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

func (r *ProfileRepository) Update(ctx context.Context, p user.Profile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET email = $2, full_name = $3, updated_at = now() WHERE id = $1`,
		p.ID, p.Email, p.FullName)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}
