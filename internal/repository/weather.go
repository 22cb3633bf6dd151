// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"weather-games-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrNoFavorite = errors.New("no favorite city")
)

// WeatherRepository handles the weather request log and favorite cities.
type WeatherRepository struct {
	pool *pgxpool.Pool
}

// NewWeatherRepository creates a new WeatherRepository instance.
func NewWeatherRepository(pool *pgxpool.Pool) *WeatherRepository {
	return &WeatherRepository{pool: pool}
}

// LogRequest appends a weather lookup to the request log.
func (r *WeatherRepository) LogRequest(ctx context.Context, userID int64, city string) error {
	const query = `INSERT INTO weather_requests (user_id, city) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, userID, city); err != nil {
		return fmt.Errorf("failed to log weather request: %w", err)
	}
	return nil
}

// SaveFavorite stores a favorite city for the user.
// Saving the same city twice is a no-op.
func (r *WeatherRepository) SaveFavorite(ctx context.Context, userID int64, city string) error {
	const query = `
		INSERT INTO favorite_cities (user_id, city)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, userID, city); err != nil {
		return fmt.Errorf("failed to save favorite city: %w", err)
	}
	return nil
}

// Favorite returns one of the user's favorite cities.
// The schema allows several rows; an arbitrary one is returned.
// Returns ErrNoFavorite if the user has none.
func (r *WeatherRepository) Favorite(ctx context.Context, userID int64) (string, error) {
	const query = `SELECT city FROM favorite_cities WHERE user_id = $1 LIMIT 1`

	var city string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&city)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoFavorite
		}
		return "", fmt.Errorf("failed to get favorite city: %w", err)
	}

	return city, nil
}

// Requests returns the most recent weather lookups for a user, newest first.
func (r *WeatherRepository) Requests(ctx context.Context, userID int64, limit int) ([]*model.WeatherRequest, error) {
	const query = `
		SELECT id, user_id, city, timestamp
		FROM weather_requests
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get weather requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.WeatherRequest
	for rows.Next() {
		var req model.WeatherRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.City, &req.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan weather request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weather requests: %w", err)
	}

	return requests, nil
}
