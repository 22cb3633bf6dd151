package handler

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"weather-games-bot/internal/pkg/lock"
	"weather-games-bot/internal/service"
	"weather-games-bot/internal/session"
)

// menuLiteral returns the user to the main menu from anywhere,
// case-sensitive, before any pending prompt or game is consulted.
const menuLiteral = "Меню"

// route is the free-text routing decision.
type route int

const (
	routeIgnore route = iota
	routeMenu
	routeCity
	routeGame
)

// routeText decides what a free-text message means given the conversation
// flags. The menu literal always wins, then the city prompt, then the game.
func routeText(text string, s session.Session) route {
	switch {
	case text == menuLiteral:
		return routeMenu
	case s.AwaitingCity:
		return routeCity
	case s.AwaitingGame != "":
		return routeGame
	}
	return routeIgnore
}

// MessageHandler routes free-text messages based on the conversation flags.
type MessageHandler struct {
	weatherService *service.WeatherService
	gameService    *service.GameService
	sessions       *session.Manager
	userLock       *lock.UserLock
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(
	weatherService *service.WeatherService,
	gameService *service.GameService,
	sessions *session.Manager,
	userLock *lock.UserLock,
) *MessageHandler {
	return &MessageHandler{
		weatherService: weatherService,
		gameService:    gameService,
		sessions:       sessions,
		userLock:       userLock,
	}
}

// HandleText dispatches incoming free text to exactly one of: the menu
// reset, the pending city prompt, the awaited game, or nothing.
func (h *MessageHandler) HandleText(c tele.Context) error {
	sender := c.Sender()
	chat := c.Chat()
	if sender == nil || chat == nil {
		return nil
	}

	text := c.Text()
	s := h.sessions.Get(chat.ID)

	switch routeText(text, s) {
	case routeMenu:
		log.Info().Int64("user_id", sender.ID).Msg("User returned to main menu")
		h.sessions.Clear(chat.ID)
		return c.Send("Вы вернулись в главное меню:", MainMenu())
	case routeCity:
		return h.handleCityInput(c, text)
	case routeGame:
		return h.handleGameTurn(c, s.AwaitingGame, text)
	}

	// Free text outside any prompt is ignored.
	return nil
}

// handleCityInput treats the text as a city name, replies with the forecast
// and a save-as-favorite button, and clears the city flag.
func (h *MessageHandler) handleCityInput(c tele.Context, text string) error {
	ctx := context.Background()
	city := strings.TrimSpace(text)

	forecast := h.weatherService.Forecast(ctx, c.Sender().ID, city)
	h.sessions.ClearCity(c.Chat().ID)

	return c.Send(forecast, SaveFavoriteMenu(city))
}

// handleGameTurn forwards the text to the awaited game under the user's lock.
func (h *MessageHandler) handleGameTurn(c tele.Context, gameName, text string) error {
	ctx := context.Background()
	sender := c.Sender()

	h.userLock.Lock(sender.ID)
	defer h.userLock.Unlock(sender.ID)

	outcome, err := h.gameService.PlayTurn(ctx, sender.ID, gameName, text)
	if err != nil {
		return err
	}

	if outcome.Ended {
		h.sessions.ClearGame(c.Chat().ID)
	}

	if outcome.Mastered {
		if err := c.Send(&tele.Sticker{File: tele.File{FileID: achievementSticker}}); err != nil {
			log.Warn().Err(err).Int64("user_id", sender.ID).Msg("Failed to send achievement sticker")
		}
	}

	if outcome.Ended {
		return c.Send(outcome.Reply, MainMenu())
	}
	return c.Send(outcome.Reply)
}
