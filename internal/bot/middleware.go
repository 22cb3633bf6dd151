// Package bot provides middleware for the Telegram bot.
package bot

import (
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"weather-games-bot/internal/handler"
)

// errorMessage is the generic apology shown when update processing fails.
const errorMessage = "Произошла ошибка, попробуйте позже."

// LoggingMiddleware creates a middleware that logs all incoming updates.
func LoggingMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			chat := c.Chat()

			logEvent := log.Debug()
			if sender != nil {
				logEvent = logEvent.
					Int64("user_id", sender.ID).
					Str("username", sender.Username)
			}
			if chat != nil {
				logEvent = logEvent.
					Int64("chat_id", chat.ID).
					Str("chat_type", string(chat.Type))
			}
			logEvent.
				Str("text", c.Text()).
				Msg("Received update")

			return next(c)
		}
	}
}

// ErrorReplyMiddleware is the top-level safety net: any handler error or
// panic is logged and answered with a generic apology plus the main menu.
// The middleware itself never fails.
func ErrorReplyMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Msg("Recovered from panic in handler")
					replyWithApology(c)
				}
			}()

			if err := next(c); err != nil {
				log.Error().Err(err).Msg("Handler error")
				replyWithApology(c)
			}
			return nil
		}
	}
}

// replyWithApology answers on whichever channel fits the update: editing the
// callback message (skipping a duplicate edit) or sending a fresh message.
func replyWithApology(c tele.Context) {
	if c.Callback() != nil {
		if msg := c.Message(); msg != nil && msg.Text != errorMessage {
			if err := c.Edit(errorMessage, handler.MainMenu()); err != nil {
				log.Debug().Err(err).Msg("Failed to edit error reply")
			}
		}
		return
	}

	if err := c.Send(errorMessage, handler.MainMenu()); err != nil {
		log.Debug().Err(err).Msg("Failed to send error reply")
	}
}
