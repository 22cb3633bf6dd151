// Package weather fetches 5-day forecasts from the OpenWeather API and
// renders them as a short midday digest.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"weather-games-bot/internal/config"
)

// User-facing degradation strings. The forecast call never surfaces an error
// to the router; it always returns displayable text.
const (
	MsgCityNotFound  = "Не удалось найти город для прогноза."
	MsgForecastError = "Произошла ошибка при получении прогноза."
)

// middayMark selects one sample per date from the 3-hour forecast series.
const middayMark = "12:00:00"

// Client calls the OpenWeather 5-day/3-hour forecast endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a forecast client from configuration.
func NewClient(cfg *config.WeatherConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// forecastResponse mirrors the fields of the OpenWeather payload we read.
type forecastResponse struct {
	Cod  string `json:"cod"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns a human-readable 5-day digest for the city.
// Transport errors, bad payloads and unknown cities degrade to fixed strings.
func (c *Client) Forecast(ctx context.Context, city string) string {
	endpoint := fmt.Sprintf(
		"%s/data/2.5/forecast?q=%s&appid=%s&units=metric&lang=ru",
		c.baseURL, url.QueryEscape(city), c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("Failed to build forecast request")
		return MsgForecastError
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("Forecast request failed")
		return MsgForecastError
	}
	defer resp.Body.Close()

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Error().Err(err).Str("city", city).Msg("Failed to decode forecast response")
		return MsgForecastError
	}

	if data.Cod != "200" {
		return MsgCityNotFound
	}

	return formatDigest(city, &data)
}

// formatDigest keeps the first midday sample of each date, in series order.
func formatDigest(city string, data *forecastResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Прогноз на 5 дней в %s:\n", city)

	seen := make(map[string]bool)
	var lines []string
	for _, entry := range data.List {
		date, _, found := strings.Cut(entry.DtTxt, " ")
		if !found || seen[date] || !strings.Contains(entry.DtTxt, middayMark) {
			continue
		}
		desc := ""
		if len(entry.Weather) > 0 {
			desc = entry.Weather[0].Description
		}
		seen[date] = true
		lines = append(lines, fmt.Sprintf("%s: %g°C, %s", date, entry.Main.Temp, desc))
	}

	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
