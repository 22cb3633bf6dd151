package handler

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"weather-games-bot/internal/config"
)

// MenuHandler handles the plain bot commands.
type MenuHandler struct {
	cfg *config.Config
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(cfg *config.Config) *MenuHandler {
	return &MenuHandler{cfg: cfg}
}

// HandleStart handles the /start command.
func (h *MenuHandler) HandleStart(c tele.Context) error {
	return c.Send("Привет! Я простой бот. Выбери опцию:", MainMenu())
}

// HandleMenu handles the /menu command.
func (h *MenuHandler) HandleMenu(c tele.Context) error {
	return c.Send("Вы открыли главное меню:", MainMenu())
}

// HandlePay handles the /pay payment-demo command. It only echoes a masked
// provider-token prefix; no invoice is issued.
func (h *MenuHandler) HandlePay(c tele.Context) error {
	token := h.cfg.Bot.ProviderToken
	prefix := token
	if len(token) > 5 {
		prefix = token[:5]
	}
	return c.Send(
		fmt.Sprintf("Демонстрация платежа с использованием PROVIDER_TOKEN: %s...", prefix),
		MainMenu(),
	)
}
