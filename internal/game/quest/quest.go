// Package quest implements the linear text quest: three fixed prompts, each
// passed by answering with a continuation word.
package quest

import (
	"encoding/json"
	"fmt"
	"strings"

	"weather-games-bot/internal/game"
	"weather-games-bot/internal/model"
)

// Stages is the fixed quest script in order.
var Stages = []string{
	"Ты в тёмном лесу. Куда пойдёшь? (вперёд/назад)",
	"Ты нашёл сундук. Открыть? (да/нет)",
	"Внутри сундука ключ. Взять? (да/нет)",
}

// State is the persisted session state.
type State struct {
	Stage int `json:"stage"`
}

// Engine implements the game.Engine interface for the quest.
type Engine struct{}

// New creates the engine.
func New() *Engine {
	return &Engine{}
}

// Name returns the stored game name.
func (e *Engine) Name() string { return model.GameQuest }

// Title returns the display name.
func (e *Engine) Title() string { return "Квест" }

// Achievement returns the mastery badge name.
func (e *Engine) Achievement() string { return model.AchievementQuest }

// Start begins a session at stage zero with the first prompt.
func (e *Engine) Start() (any, string, string) {
	return &State{Stage: 0}, Stages[0], "Введи ответ:"
}

// Turn plays one quest answer. Anything but a continuation word, or a
// continuation past the last stage, fails the quest.
func (e *Engine) Turn(input string, score int, raw json.RawMessage) (*game.TurnResult, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode quest state: %w", err)
	}

	answer := strings.ToLower(input)
	if (answer != "вперёд" && answer != "да") || st.Stage >= len(Stages) {
		return &game.TurnResult{
			Reply:     "Неверный выбор, квест провален!",
			Score:     score,
			LogResult: true,
			Ended:     true,
		}, nil
	}

	score += model.TurnScore
	st.Stage++

	if st.Stage >= len(Stages) {
		if score >= model.MasteryScore {
			return &game.TurnResult{
				Reply:     fmt.Sprintf("Ты прошёл квест! Достижение '%s' (🗺️) получено! Очки: %d", model.AchievementQuest, score),
				Score:     score,
				State:     &st,
				LogResult: true,
				Ended:     true,
				Mastered:  true,
			}, nil
		}
		return &game.TurnResult{
			Reply:     fmt.Sprintf("Ты прошёл квест! Очки: %d", score),
			Score:     score,
			State:     &st,
			LogResult: true,
			Ended:     true,
		}, nil
	}

	return &game.TurnResult{
		Reply:     Stages[st.Stage],
		Score:     score,
		State:     &st,
		LogResult: true,
	}, nil
}
