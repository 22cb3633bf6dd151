package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"weather-games-bot/internal/model"
)

// ProgressRepository handles the single game_progress row per user and the
// append-only game_results log.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository instance.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// StartGame upserts the progress row for a fresh session: the named game,
// score 0 and an empty state blob.
func (r *ProgressRepository) StartGame(ctx context.Context, userID int64, gameName string) error {
	const query = `
		INSERT INTO game_progress (user_id, game_name, score, state)
		VALUES ($1, $2, 0, '{}')
		ON CONFLICT (user_id) DO UPDATE SET game_name = $2, score = 0, state = '{}'
	`

	if _, err := r.pool.Exec(ctx, query, userID, gameName); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	return nil
}

// UpdateState overwrites the user's score and state blob wholesale.
// game_name is deliberately untouched: it goes stale when a game ends and the
// only reliable "game is active" signal is the conversation flag.
func (r *ProgressRepository) UpdateState(ctx context.Context, userID int64, score int, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}

	const query = `UPDATE game_progress SET score = $2, state = $3 WHERE user_id = $1`

	if _, err := r.pool.Exec(ctx, query, userID, score, raw); err != nil {
		return fmt.Errorf("failed to update game state: %w", err)
	}
	return nil
}

// Get returns the user's progress row. A user with no row gets an empty
// progress (no game name, zero score, empty state), not an error.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*model.GameProgress, error) {
	const query = `SELECT game_name, score, state FROM game_progress WHERE user_id = $1`

	progress := model.GameProgress{UserID: userID, State: json.RawMessage(`{}`)}
	var gameName *string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&gameName, &progress.Score, &progress.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.GameProgress{UserID: userID, State: json.RawMessage(`{}`)}, nil
		}
		return nil, fmt.Errorf("failed to get game progress: %w", err)
	}
	if gameName != nil {
		progress.GameName = *gameName
	}

	return &progress, nil
}

// AppendResult adds one score snapshot to the historical results log.
func (r *ProgressRepository) AppendResult(ctx context.Context, userID int64, gameName string, score int) error {
	const query = `INSERT INTO game_results (user_id, game_name, score) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, userID, gameName, score); err != nil {
		return fmt.Errorf("failed to append game result: %w", err)
	}
	return nil
}

// Results returns the most recent result rows for a user, newest first.
func (r *ProgressRepository) Results(ctx context.Context, userID int64, limit int) ([]*model.GameResult, error) {
	const query = `
		SELECT user_id, game_name, score, timestamp
		FROM game_results
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get game results: %w", err)
	}
	defer rows.Close()

	var results []*model.GameResult
	for rows.Next() {
		var res model.GameResult
		if err := rows.Scan(&res.UserID, &res.GameName, &res.Score, &res.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game results: %w", err)
	}

	return results, nil
}
