package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Gamification struct {
	UserID      uuid.UUID
	TotalPoints int
	Level       int
	Streak      int
	UpdatedAt   time.Time
}

type Achievement struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	EarnedAt time.Time
}

type GamificationRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (Gamification, error)
	AddPoints(ctx context.Context, userID uuid.UUID, points int) (Gamification, error)
	Achievements(ctx context.Context, userID uuid.UUID) ([]Achievement, error)
	GrantAchievement(ctx context.Context, userID uuid.UUID, name string) error
}

type PostgresGamificationRepository struct {
	db database.DB
}

func NewPostgresGamificationRepository(db database.DB) *PostgresGamificationRepository {
	return &PostgresGamificationRepository{db: db}
}

func (r *PostgresGamificationRepository) Get(ctx context.Context, userID uuid.UUID) (Gamification, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, total_points, level, streak, updated_at FROM user_gamification WHERE user_id = $1`,
		userID)
	var g Gamification
	if err := row.Scan(&g.UserID, &g.TotalPoints, &g.Level, &g.Streak, &g.UpdatedAt); err != nil {
		// Only an absent row reads as the zero state.
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return Gamification{UserID: userID, Level: 1}, nil
		}
		return Gamification{}, err
	}
	return g, nil
}

// AddPoints upserts the running total. Level is total_points/50 + 1.
func (r *PostgresGamificationRepository) AddPoints(ctx context.Context, userID uuid.UUID, points int) (Gamification, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_gamification (user_id, total_points, level)
		 VALUES ($1, $2, $2 / 50 + 1)
		 ON CONFLICT (user_id) DO UPDATE SET
			total_points = user_gamification.total_points + EXCLUDED.total_points,
			level = (user_gamification.total_points + EXCLUDED.total_points) / 50 + 1,
			updated_at = now()
		 RETURNING user_id, total_points, level, streak, updated_at`,
		userID, points)

	var g Gamification
	if err := row.Scan(&g.UserID, &g.TotalPoints, &g.Level, &g.Streak, &g.UpdatedAt); err != nil {
		return Gamification{}, err
	}
	return g, nil
}

func (r *PostgresGamificationRepository) Achievements(ctx context.Context, userID uuid.UUID) ([]Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, earned_at FROM user_achievements WHERE user_id = $1 ORDER BY earned_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Achievement, 0)
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.EarnedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresGamificationRepository) GrantAchievement(ctx context.Context, userID uuid.UUID, name string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_achievements (id, user_id, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, name) DO NOTHING`,
		uuid.New(), userID, name)
	return err
}
