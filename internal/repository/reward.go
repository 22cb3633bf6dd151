package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RewardRepository handles achievements and the star balance.
type RewardRepository struct {
	pool *pgxpool.Pool
}

// NewRewardRepository creates a new RewardRepository instance.
func NewRewardRepository(pool *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{pool: pool}
}

// AwardAchievement stores a named badge for the user.
// Awarding the same badge twice is a no-op.
func (r *RewardRepository) AwardAchievement(ctx context.Context, userID int64, achievement string) error {
	const query = `
		INSERT INTO user_achievements (user_id, achievement)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, userID, achievement); err != nil {
		return fmt.Errorf("failed to award achievement: %w", err)
	}
	return nil
}

// Achievements returns all badges earned by the user.
func (r *RewardRepository) Achievements(ctx context.Context, userID int64) ([]string, error) {
	const query = `SELECT achievement FROM user_achievements WHERE user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	defer rows.Close()

	var achievements []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return achievements, nil
}

// Stars returns the user's star balance, inserting a zero row on first read.
func (r *RewardRepository) Stars(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT stars FROM user_stars WHERE user_id = $1`

	var stars int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&stars)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			const insert = `INSERT INTO user_stars (user_id, stars) VALUES ($1, 0) ON CONFLICT DO NOTHING`
			if _, err := r.pool.Exec(ctx, insert, userID); err != nil {
				return 0, fmt.Errorf("failed to init star balance: %w", err)
			}
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get star balance: %w", err)
	}

	return stars, nil
}

// AddStars increments the user's star balance, creating the row if missing.
func (r *RewardRepository) AddStars(ctx context.Context, userID int64, amount int) error {
	const query = `
		INSERT INTO user_stars (user_id, stars)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET stars = user_stars.stars + $2
	`

	if _, err := r.pool.Exec(ctx, query, userID, amount); err != nil {
		return fmt.Errorf("failed to add stars: %w", err)
	}
	return nil
}
