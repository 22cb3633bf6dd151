package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"weather-games-bot/internal/model"
	"weather-games-bot/internal/repository"
)

// RewardService grants achievements and stars.
type RewardService struct {
	rewardRepo *repository.RewardRepository
}

// NewRewardService creates a new RewardService instance.
func NewRewardService(rewardRepo *repository.RewardRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo}
}

// GrantMastery awards the named badge (idempotently) plus the star reward.
// Failures are logged and swallowed; a reward miss never breaks a game turn.
func (s *RewardService) GrantMastery(ctx context.Context, userID int64, achievement string) {
	if err := s.rewardRepo.AwardAchievement(ctx, userID, achievement); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("achievement", achievement).Msg("Failed to award achievement")
	}
	if err := s.rewardRepo.AddStars(ctx, userID, model.MasteryStars); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to add stars")
	}
}

// Stars returns the user's star balance, zero on failure.
func (s *RewardService) Stars(ctx context.Context, userID int64) int {
	stars, err := s.rewardRepo.Stars(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get star balance")
		return 0
	}
	return stars
}
