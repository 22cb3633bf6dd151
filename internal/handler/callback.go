package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"weather-games-bot/internal/model"
	"weather-games-bot/internal/service"
	"weather-games-bot/internal/session"
)

// Prompt and notice texts reused by the edit deduplication.
const (
	textCityPrompt  = "Введите название города для прогноза на 5 дней:"
	textCityAsk     = "Введи город:"
	textAdminNotice = "Вы направили запрос Администратору."
	textNoFavorite  = "У вас нет любимого города. Введите город для прогноза:"
	textChooseGame  = "Выбери игру:"
	textBackToMenu  = "Вы вернулись в главное меню:"
)

// CallbackHandler routes inline-button presses.
type CallbackHandler struct {
	weatherService *service.WeatherService
	gameService    *service.GameService
	sessions       *session.Manager
	adminChatID    int64
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(
	weatherService *service.WeatherService,
	gameService *service.GameService,
	sessions *session.Manager,
	adminChatID int64,
) *CallbackHandler {
	return &CallbackHandler{
		weatherService: weatherService,
		gameService:    gameService,
		sessions:       sessions,
		adminChatID:    adminChatID,
	}
}

// Handle acknowledges the callback and dispatches on its payload.
func (h *CallbackHandler) Handle(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data
	data := strings.TrimPrefix(callback.Data, "\f")

	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		log.Warn().Err(err).Str("callback_id", callback.ID).Msg("Failed to answer callback query")
	}

	log.Info().Int64("user_id", c.Sender().ID).Str("data", data).Msg("Callback received")

	switch {
	case data == CallbackWeather:
		return h.openWeatherPrompt(c)
	case data == CallbackAdmin:
		return h.contactAdmin(c)
	case data == CallbackFavoriteWeather:
		return h.favoriteForecast(c)
	case strings.HasPrefix(data, CallbackSaveCity):
		return h.saveFavorite(c, strings.TrimPrefix(data, CallbackSaveCity))
	case data == CallbackPlay:
		return h.openGamesMenu(c)
	case data == CallbackGameCities:
		return h.startGame(c, model.GameCities)
	case data == CallbackGameGuess:
		return h.startGame(c, model.GameGuess)
	case data == CallbackGameQuest:
		return h.startGame(c, model.GameQuest)
	case data == CallbackGameLogic:
		return h.startGame(c, model.GameLogic)
	case data == CallbackMain:
		return h.backToMenu(c)
	}

	return nil
}

// edit replaces the callback message unless it already shows the same text,
// which would make the transport reject the edit as a duplicate.
func (h *CallbackHandler) edit(c tele.Context, text string, opts ...any) (bool, error) {
	if msg := c.Message(); msg != nil && msg.Text == text {
		return false, nil
	}
	if err := c.Edit(text, opts...); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// openWeatherPrompt asks for a city name and arms the city flag.
func (h *CallbackHandler) openWeatherPrompt(c tele.Context) error {
	edited, err := h.edit(c, textCityPrompt)
	if err != nil {
		return err
	}
	if edited {
		if err := c.Send(textCityAsk); err != nil {
			return err
		}
	}

	h.sessions.AwaitCity(c.Chat().ID)
	return nil
}

// contactAdmin forwards a contact notice to the operator chat.
func (h *CallbackHandler) contactAdmin(c tele.Context) error {
	edited, err := h.edit(c, textAdminNotice, MainMenu())
	if err != nil {
		return err
	}
	if !edited {
		return nil
	}

	sender := c.Sender()
	display := sender.Username
	if display == "" {
		display = strconv.FormatInt(sender.ID, 10)
	}
	notice := fmt.Sprintf(
		`Пользователь <a href="tg://user?id=%d">@%s</a> запросил связь с админом!`,
		sender.ID, display,
	)

	if _, err := c.Bot().Send(tele.ChatID(h.adminChatID), notice, tele.ModeHTML); err != nil {
		return fmt.Errorf("failed to notify admin: %w", err)
	}
	return nil
}

// favoriteForecast shows the saved city's forecast, or asks for a city.
func (h *CallbackHandler) favoriteForecast(c tele.Context) error {
	ctx := context.Background()

	if forecast, ok := h.weatherService.FavoriteForecast(ctx, c.Sender().ID); ok {
		_, err := h.edit(c, forecast, MainMenu())
		return err
	}

	edited, err := h.edit(c, textNoFavorite)
	if err != nil {
		return err
	}
	if edited {
		if err := c.Send(textCityAsk); err != nil {
			return err
		}
	}

	h.sessions.AwaitCity(c.Chat().ID)
	return nil
}

// saveFavorite stores the city carried in the button payload.
func (h *CallbackHandler) saveFavorite(c tele.Context, city string) error {
	ctx := context.Background()
	h.weatherService.SaveFavorite(ctx, c.Sender().ID, city)

	_, err := h.edit(c, fmt.Sprintf("Город %s сохранён как любимый!", city), MainMenu())
	return err
}

// openGamesMenu shows the games submenu.
func (h *CallbackHandler) openGamesMenu(c tele.Context) error {
	_, err := h.edit(c, textChooseGame, GamesMenu())
	return err
}

// startGame resets the named game and arms the game flag.
func (h *CallbackHandler) startGame(c tele.Context, gameName string) error {
	ctx := context.Background()

	announcement, prompt, err := h.gameService.Start(ctx, c.Sender().ID, gameName)
	if err != nil {
		return err
	}

	edited, err := h.edit(c, announcement)
	if err != nil {
		return err
	}
	if edited {
		if err := c.Send(prompt); err != nil {
			return err
		}
	}

	h.sessions.AwaitGame(c.Chat().ID, gameName)
	return nil
}

// backToMenu redisplays the main menu and drops the whole session.
func (h *CallbackHandler) backToMenu(c tele.Context) error {
	if _, err := h.edit(c, textBackToMenu, MainMenu()); err != nil {
		return err
	}

	h.sessions.Clear(c.Chat().ID)
	return nil
}
