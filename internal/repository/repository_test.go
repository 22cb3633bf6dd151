// Package repository provides data access layer implementations.
// Tests use testcontainers-go to spin up a PostgreSQL container.
package repository

import (
	"context"
	"encoding/json"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"weather-games-bot/internal/model"
)

// checkDockerAvailable checks if Docker is available and running
func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	err := cmd.Run()
	return err == nil
}

// setupTestDB creates a PostgreSQL container and returns a connection pool
// Skips the test if Docker is not available
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	err = runTestMigrations(ctx, pool)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// runTestMigrations applies the database schema
func runTestMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS weather_requests (
			id SERIAL PRIMARY KEY,
			user_id BIGINT,
			city TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS favorite_cities (
			user_id BIGINT,
			city TEXT,
			PRIMARY KEY (user_id, city)
		)`,
		`CREATE TABLE IF NOT EXISTS game_progress (
			user_id BIGINT PRIMARY KEY,
			game_name TEXT,
			score INTEGER DEFAULT 0,
			state JSONB DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			user_id BIGINT,
			achievement TEXT,
			PRIMARY KEY (user_id, achievement)
		)`,
		`CREATE TABLE IF NOT EXISTS user_stars (
			user_id BIGINT PRIMARY KEY,
			stars INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS game_results (
			user_id BIGINT,
			game_name TEXT,
			score INTEGER,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// WeatherRepository Tests
// ============================================================================

func TestWeatherRepository_Favorite(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewWeatherRepository(pool)
	ctx := context.Background()

	// No favorite yet
	_, err := repo.Favorite(ctx, 12345)
	assert.ErrorIs(t, err, ErrNoFavorite)

	// Save and read back
	err = repo.SaveFavorite(ctx, 12345, "Москва")
	require.NoError(t, err)

	city, err := repo.Favorite(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, "Москва", city)

	// Saving the same city again is a no-op
	err = repo.SaveFavorite(ctx, 12345, "Москва")
	require.NoError(t, err)
}

func TestWeatherRepository_RequestLog(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewWeatherRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.LogRequest(ctx, 12345, "Москва"))
	require.NoError(t, repo.LogRequest(ctx, 12345, "Казань"))
	require.NoError(t, repo.LogRequest(ctx, 99999, "Пермь"))

	requests, err := repo.Requests(ctx, 12345, 10)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	for _, req := range requests {
		assert.Equal(t, int64(12345), req.UserID)
		assert.False(t, req.Timestamp.IsZero())
	}
}

// ============================================================================
// ProgressRepository Tests
// ============================================================================

func TestProgressRepository_GetWithoutRow(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProgressRepository(pool)
	ctx := context.Background()

	// A user with no row gets empty progress, not an error
	progress, err := repo.Get(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), progress.UserID)
	assert.Empty(t, progress.GameName)
	assert.Equal(t, 0, progress.Score)
	assert.JSONEq(t, `{}`, string(progress.State))
}

func TestProgressRepository_StartGameResets(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProgressRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.StartGame(ctx, 12345, model.GameCities))
	require.NoError(t, repo.UpdateState(ctx, 12345, 30, map[string]any{"last_city": "анапа"}))

	// Starting another game resets score and state
	require.NoError(t, repo.StartGame(ctx, 12345, model.GameGuess))

	progress, err := repo.Get(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, model.GameGuess, progress.GameName)
	assert.Equal(t, 0, progress.Score)
	assert.JSONEq(t, `{}`, string(progress.State))
}

func TestProgressRepository_StateRoundtrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProgressRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.StartGame(ctx, 12345, model.GameCities))

	state := map[string]any{
		"last_city":   "анапа",
		"used_cities": []string{"москва", "анапа"},
	}
	require.NoError(t, repo.UpdateState(ctx, 12345, 10, state))

	progress, err := repo.Get(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, 10, progress.Score)

	var decoded struct {
		LastCity   string   `json:"last_city"`
		UsedCities []string `json:"used_cities"`
	}
	require.NoError(t, json.Unmarshal(progress.State, &decoded))
	assert.Equal(t, "анапа", decoded.LastCity)
	assert.Equal(t, []string{"москва", "анапа"}, decoded.UsedCities)
}

func TestProgressRepository_UpdateStateKeepsGameName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProgressRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.StartGame(ctx, 12345, model.GameQuest))
	require.NoError(t, repo.UpdateState(ctx, 12345, 20, map[string]any{"stage": 2}))

	progress, err := repo.Get(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, model.GameQuest, progress.GameName)
	assert.Equal(t, 20, progress.Score)
}

func TestProgressRepository_Results(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProgressRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.AppendResult(ctx, 12345, model.GameCities, 10))
	require.NoError(t, repo.AppendResult(ctx, 12345, model.GameCities, 20))
	require.NoError(t, repo.AppendResult(ctx, 99999, model.GameGuess, 50))

	results, err := repo.Results(ctx, 12345, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.Equal(t, int64(12345), res.UserID)
		assert.Equal(t, model.GameCities, res.GameName)
	}
}

// ============================================================================
// RewardRepository Tests
// ============================================================================

func TestRewardRepository_AwardAchievementIdempotent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRewardRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.AwardAchievement(ctx, 12345, model.AchievementCities))
	require.NoError(t, repo.AwardAchievement(ctx, 12345, model.AchievementCities))
	require.NoError(t, repo.AwardAchievement(ctx, 12345, model.AchievementGuess))

	achievements, err := repo.Achievements(ctx, 12345)
	require.NoError(t, err)
	assert.Len(t, achievements, 2)
	assert.Contains(t, achievements, model.AchievementCities)
	assert.Contains(t, achievements, model.AchievementGuess)
}

func TestRewardRepository_StarsInitOnFirstRead(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRewardRepository(pool)
	ctx := context.Background()

	stars, err := repo.Stars(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, 0, stars)

	// The zero row now exists; reading again returns the same
	stars, err = repo.Stars(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, 0, stars)
}

func TestRewardRepository_AddStars(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRewardRepository(pool)
	ctx := context.Background()

	// First grant creates the row
	require.NoError(t, repo.AddStars(ctx, 12345, model.MasteryStars))
	stars, err := repo.Stars(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, 10, stars)

	// Further grants increment
	require.NoError(t, repo.AddStars(ctx, 12345, model.MasteryStars))
	stars, err = repo.Stars(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, 20, stars)
}
