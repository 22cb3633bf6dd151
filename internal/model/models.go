// Package model defines the data models for the weather and mini-games bot.
package model

import (
	"encoding/json"
	"time"
)

// WeatherRequest is one logged forecast lookup.
type WeatherRequest struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	City      string    `db:"city"`
	Timestamp time.Time `db:"timestamp"`
}

// FavoriteCity is a user's saved city for one-tap forecasts.
// The schema allows several rows per user; lookups take an arbitrary one.
type FavoriteCity struct {
	UserID int64  `db:"user_id"`
	City   string `db:"city"`
}

// GameProgress is the single progress row per user: which game was last
// started, the running score and the game-specific state blob.
// game_name is not reset when a game ends; only the in-memory conversation
// flag is cleared, so a stale name here does not mean an active game.
type GameProgress struct {
	UserID   int64           `db:"user_id"`
	GameName string          `db:"game_name"`
	Score    int             `db:"score"`
	State    json.RawMessage `db:"state"`
}

// GameResult is one append-only score snapshot.
type GameResult struct {
	UserID    int64     `db:"user_id"`
	GameName  string    `db:"game_name"`
	Score     int       `db:"score"`
	Timestamp time.Time `db:"timestamp"`
}

// Achievement is an idempotent named badge.
type Achievement struct {
	UserID      int64  `db:"user_id"`
	Achievement string `db:"achievement"`
}

// StarBalance is a user's reward-point balance.
type StarBalance struct {
	UserID int64 `db:"user_id"`
	Stars  int   `db:"stars"`
}

// Game names stored in game_progress.game_name and game_results.game_name.
const (
	GameCities = "Cities"
	GameGuess  = "Guess"
	GameQuest  = "Quest"
	GameLogic  = "Logic"
)

// Achievement names awarded when a game session reaches the mastery score.
const (
	AchievementCities = "Мастер городов"
	AchievementGuess  = "Мастер угадывания"
	AchievementQuest  = "Мастер приключений"
	AchievementLogic  = "Мастер логики"
)

const (
	// MasteryScore is the session score at which the achievement fires.
	MasteryScore = 100

	// MasteryStars is the star reward granted together with an achievement.
	MasteryStars = 10

	// TurnScore is the score gained per accepted game turn.
	TurnScore = 10
)
