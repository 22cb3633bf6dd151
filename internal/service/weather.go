// Package service provides business logic implementations.
//
// Store failures are logged and degrade to safe defaults here, so handlers
// can treat every persistence call as best-effort.
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"weather-games-bot/internal/repository"
	"weather-games-bot/internal/weather"
)

// WeatherService combines forecast lookups with the request log and the
// favorite-city store.
type WeatherService struct {
	client      *weather.Client
	weatherRepo *repository.WeatherRepository
}

// NewWeatherService creates a new WeatherService instance.
func NewWeatherService(client *weather.Client, weatherRepo *repository.WeatherRepository) *WeatherService {
	return &WeatherService{client: client, weatherRepo: weatherRepo}
}

// Forecast returns the 5-day digest for a city and logs the request.
// The returned text is always displayable; lookup and log failures degrade.
func (s *WeatherService) Forecast(ctx context.Context, userID int64, city string) string {
	digest := s.client.Forecast(ctx, city)

	if err := s.weatherRepo.LogRequest(ctx, userID, city); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("city", city).Msg("Failed to log weather request")
	}

	return digest
}

// FavoriteForecast returns the digest for a previously saved favorite city.
// The second return is false when the user has no favorite.
func (s *WeatherService) FavoriteForecast(ctx context.Context, userID int64) (string, bool) {
	city, ok := s.Favorite(ctx, userID)
	if !ok {
		return "", false
	}
	return s.client.Forecast(ctx, city), true
}

// Favorite returns the user's saved city, or false when there is none or the
// lookup failed.
func (s *WeatherService) Favorite(ctx context.Context, userID int64) (string, bool) {
	city, err := s.weatherRepo.Favorite(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoFavorite) {
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get favorite city")
		}
		return "", false
	}
	return city, true
}

// SaveFavorite stores a favorite city, best-effort.
func (s *WeatherService) SaveFavorite(ctx context.Context, userID int64, city string) {
	if err := s.weatherRepo.SaveFavorite(ctx, userID, city); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("city", city).Msg("Failed to save favorite city")
	}
}
