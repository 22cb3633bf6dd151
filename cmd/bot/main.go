// Package main is the entry point for the weather and mini-games bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"weather-games-bot/internal/bot"
	"weather-games-bot/internal/config"
	"weather-games-bot/internal/game"
	"weather-games-bot/internal/game/cities"
	"weather-games-bot/internal/game/guess"
	"weather-games-bot/internal/game/logic"
	"weather-games-bot/internal/game/quest"
	"weather-games-bot/internal/pkg/db"
	"weather-games-bot/internal/pkg/lock"
	"weather-games-bot/internal/repository"
	"weather-games-bot/internal/service"
	"weather-games-bot/internal/session"
	"weather-games-bot/internal/weather"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	weatherRepo := repository.NewWeatherRepository(dbPool.Pool)
	progressRepo := repository.NewProgressRepository(dbPool.Pool)
	rewardRepo := repository.NewRewardRepository(dbPool.Pool)

	// Initialize services
	weatherClient := weather.NewClient(&cfg.Weather)
	weatherService := service.NewWeatherService(weatherClient, weatherRepo)
	rewardService := service.NewRewardService(rewardRepo)

	// Initialize game registry and register engines
	registry := game.NewRegistry()
	for _, engine := range []game.Engine{
		cities.New(),
		guess.New(),
		quest.New(),
		logic.New(),
	} {
		if err := registry.Register(engine); err != nil {
			log.Fatal().Err(err).Str("game", engine.Name()).Msg("Failed to register game")
		}
	}

	gameService := service.NewGameService(progressRepo, rewardService, registry)

	log.Info().
		Int("game_count", registry.Count()).
		Strs("games", registry.Names()).
		Msg("Games registered")

	// Create bot dependencies
	deps := &bot.Dependencies{
		Config:         cfg,
		WeatherService: weatherService,
		GameService:    gameService,
		Sessions:       session.NewManager(),
		UserLock:       lock.NewUserLock(),
	}

	telegramBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("database", cfg.Database.MaskedDSN()).
			Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes the database schema setup.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: weather request log
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS weather_requests (
			id SERIAL PRIMARY KEY,
			user_id BIGINT,
			city TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: weather_requests table created")

	// Migration 2: favorite cities
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS favorite_cities (
			user_id BIGINT,
			city TEXT,
			PRIMARY KEY (user_id, city)
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: favorite_cities table created")

	// Migration 3: game progress (one row per user)
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_progress (
			user_id BIGINT PRIMARY KEY,
			game_name TEXT,
			score INTEGER DEFAULT 0,
			state JSONB DEFAULT '{}'
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: game_progress table created")

	// Migration 4: achievements
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_achievements (
			user_id BIGINT,
			achievement TEXT,
			PRIMARY KEY (user_id, achievement)
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 4: user_achievements table created")

	// Migration 5: star balances
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_stars (
			user_id BIGINT PRIMARY KEY,
			stars INTEGER DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 5: user_stars table created")

	// Migration 6: historical game results
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_results (
			user_id BIGINT,
			game_name TEXT,
			score INTEGER,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 6: game_results table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
