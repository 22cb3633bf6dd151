// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"weather-games-bot/internal/config"
	"weather-games-bot/internal/handler"
	"weather-games-bot/internal/pkg/lock"
	"weather-games-bot/internal/service"
	"weather-games-bot/internal/session"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot *tele.Bot
	cfg *config.Config

	menuHandler     *handler.MenuHandler
	messageHandler  *handler.MessageHandler
	callbackHandler *handler.CallbackHandler
}

// Dependencies holds everything needed by the bot handlers.
type Dependencies struct {
	Config         *config.Config
	WeatherService *service.WeatherService
	GameService    *service.GameService
	Sessions       *session.Manager
	UserLock       *lock.UserLock
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot: teleBot,
		cfg: deps.Config,
	}

	b.menuHandler = handler.NewMenuHandler(deps.Config)
	b.messageHandler = handler.NewMessageHandler(deps.WeatherService, deps.GameService, deps.Sessions, deps.UserLock)
	b.callbackHandler = handler.NewCallbackHandler(deps.WeatherService, deps.GameService, deps.Sessions, deps.Config.Admin.ChatID)

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(LoggingMiddleware())
	b.bot.Use(ErrorReplyMiddleware())
}

// registerHandlers registers all command, text and callback handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.menuHandler.HandleStart)
	b.bot.Handle("/menu", b.menuHandler.HandleMenu)
	b.bot.Handle("/pay", b.menuHandler.HandlePay)

	b.bot.Handle(tele.OnText, b.messageHandler.HandleText)
	b.bot.Handle(tele.OnCallback, b.callbackHandler.Handle)
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
