// Package handler provides Telegram bot message, command and callback handlers.
package handler

import (
	tele "gopkg.in/telebot.v3"
)

// Callback payloads carried by the inline keyboards.
const (
	CallbackWeather         = "weather"
	CallbackAdmin           = "admin"
	CallbackFavoriteWeather = "favorite_weather"
	CallbackPlay            = "play"
	CallbackGameCities      = "game_cities"
	CallbackGameGuess       = "game_guess"
	CallbackGameQuest       = "game_quest"
	CallbackGameLogic       = "game_logic"
	CallbackMain            = "main"
	CallbackSaveCity        = "save_city_" // save_city_<cityname>
)

// achievementSticker is sent together with every mastery achievement.
const achievementSticker = "CAACAgIAAxkBAAEKDhJk2Xh-RpP8uN8GLgG8o8nK0oW6rwAC5y0AAp8oyEmQ8eL5oIElbjME"

// MainMenu builds the main inline keyboard.
func MainMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	weatherBtn := markup.Data("☀️ Погода", CallbackWeather)
	adminBtn := markup.Data("👤 Админ", CallbackAdmin)
	favoriteBtn := markup.Data("⭐ Любимый город", CallbackFavoriteWeather)
	playBtn := markup.Data("🎮 Поиграть", CallbackPlay)

	markup.Inline(
		markup.Row(weatherBtn, adminBtn),
		markup.Row(favoriteBtn),
		markup.Row(playBtn),
	)
	return markup
}

// GamesMenu builds the games submenu keyboard.
func GamesMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	citiesBtn := markup.Data("🏙️ Города", CallbackGameCities)
	guessBtn := markup.Data("🔢 Угадай число", CallbackGameGuess)
	questBtn := markup.Data("🗺️ Квест", CallbackGameQuest)
	logicBtn := markup.Data("🧩 Логика", CallbackGameLogic)
	backBtn := markup.Data("🔙 Назад", CallbackMain)

	markup.Inline(
		markup.Row(citiesBtn, guessBtn),
		markup.Row(questBtn, logicBtn),
		markup.Row(backBtn),
	)
	return markup
}

// SaveFavoriteMenu builds the single-button keyboard attached to a forecast,
// carrying the city in the callback payload.
func SaveFavoriteMenu(city string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	saveBtn := markup.Data("⭐ Сохранить как любимый", CallbackSaveCity+city)
	markup.Inline(markup.Row(saveBtn))
	return markup
}
