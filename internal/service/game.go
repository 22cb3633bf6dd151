package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"weather-games-bot/internal/game"
	"weather-games-bot/internal/model"
	"weather-games-bot/internal/repository"
)

// staleNotices are the replies when the stored game name does not match the
// game the conversation is waiting on.
var staleNotices = map[string]string{
	model.GameCities: "Вы не играете в 'Города' сейчас.",
	model.GameGuess:  "Вы не играете в 'Угадай число' сейчас.",
	model.GameQuest:  "Вы не играете в 'Квест' сейчас.",
	model.GameLogic:  "Вы не играете в 'Логику' сейчас.",
}

// TurnOutcome is what the message handler needs after a game turn.
type TurnOutcome struct {
	Reply    string
	Ended    bool
	Mastered bool
	Stale    bool
}

// GameService orchestrates engine turns against the persisted progress.
type GameService struct {
	progressRepo *repository.ProgressRepository
	rewards      *RewardService
	registry     *game.Registry
}

// NewGameService creates a new GameService instance.
func NewGameService(
	progressRepo *repository.ProgressRepository,
	rewards *RewardService,
	registry *game.Registry,
) *GameService {
	return &GameService{
		progressRepo: progressRepo,
		rewards:      rewards,
		registry:     registry,
	}
}

// Start resets the progress row for a fresh session of the named game and
// returns the announcement plus the follow-up prompt to show the user.
func (s *GameService) Start(ctx context.Context, userID int64, gameName string) (string, string, error) {
	engine, ok := s.registry.Get(gameName)
	if !ok {
		return "", "", fmt.Errorf("unknown game %q", gameName)
	}

	if err := s.progressRepo.StartGame(ctx, userID, gameName); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("game", gameName).Msg("Failed to start game")
	}

	state, announcement, prompt := engine.Start()
	if state != nil {
		if err := s.progressRepo.UpdateState(ctx, userID, 0, state); err != nil {
			log.Error().Err(err).Int64("user_id", userID).Str("game", gameName).Msg("Failed to store initial game state")
		}
	}

	return announcement, prompt, nil
}

// PlayTurn runs one engine turn and applies its side effects: state and
// score persistence, result logging and the mastery reward.
func (s *GameService) PlayTurn(ctx context.Context, userID int64, gameName, input string) (*TurnOutcome, error) {
	engine, ok := s.registry.Get(gameName)
	if !ok {
		return nil, fmt.Errorf("unknown game %q", gameName)
	}

	progress, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load game progress")
		progress = &model.GameProgress{UserID: userID, State: json.RawMessage(`{}`)}
	}

	// The stored game_name goes stale when a game ends (only the conversation
	// flag is cleared), so this check guards against a flag/row mismatch, not
	// against normal play after termination.
	if progress.GameName != gameName {
		return &TurnOutcome{Reply: staleNotices[gameName], Ended: true, Stale: true}, nil
	}

	result, err := engine.Turn(input, progress.Score, progress.State)
	if err != nil {
		return nil, fmt.Errorf("game turn failed: %w", err)
	}

	if result.State != nil {
		if err := s.progressRepo.UpdateState(ctx, userID, result.Score, result.State); err != nil {
			log.Error().Err(err).Int64("user_id", userID).Str("game", gameName).Msg("Failed to persist game state")
		}
	}
	if result.LogResult {
		if err := s.progressRepo.AppendResult(ctx, userID, gameName, result.Score); err != nil {
			log.Error().Err(err).Int64("user_id", userID).Str("game", gameName).Msg("Failed to log game result")
		}
	}
	if result.Mastered {
		s.rewards.GrantMastery(ctx, userID, engine.Achievement())
	}

	return &TurnOutcome{
		Reply:    result.Reply,
		Ended:    result.Ended,
		Mastered: result.Mastered,
	}, nil
}
