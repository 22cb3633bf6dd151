// Package logic implements the riddle trivia mini-game: a fixed riddle list
// cycled with modulo; the first wrong answer ends the session.
package logic

import (
	"encoding/json"
	"fmt"
	"strings"

	"weather-games-bot/internal/game"
	"weather-games-bot/internal/model"
)

// Riddle is one riddle/answer pair.
type Riddle struct {
	Riddle string
	Answer string
}

// Riddles is the fixed ordered riddle list.
var Riddles = []Riddle{
	{Riddle: "Число: 2, 4, 6, ?. Какое следующее?", Answer: "8"},
	{Riddle: "Что всегда идёт, но никогда не приходит?", Answer: "время"},
	{Riddle: "У меня есть города, но нет домов. Что я?", Answer: "карта"},
}

// State is the persisted session state.
type State struct {
	RiddleIdx int `json:"riddle_idx"`
}

// Engine implements the game.Engine interface for riddle trivia.
type Engine struct{}

// New creates the engine.
func New() *Engine {
	return &Engine{}
}

// Name returns the stored game name.
func (e *Engine) Name() string { return model.GameLogic }

// Title returns the display name.
func (e *Engine) Title() string { return "Логика" }

// Achievement returns the mastery badge name.
func (e *Engine) Achievement() string { return model.AchievementLogic }

// Start begins a session at the first riddle.
func (e *Engine) Start() (any, string, string) {
	return &State{RiddleIdx: 0}, Riddles[0].Riddle, "Введи ответ:"
}

// Turn plays one answer against the current riddle.
func (e *Engine) Turn(input string, score int, raw json.RawMessage) (*game.TurnResult, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode logic state: %w", err)
	}

	idx := st.RiddleIdx % len(Riddles)
	riddle := Riddles[idx]

	if strings.ToLower(strings.TrimSpace(input)) != riddle.Answer {
		return &game.TurnResult{
			Reply:     fmt.Sprintf("Неверно! Правильный ответ: %s. Игра окончена.", riddle.Answer),
			Score:     score,
			LogResult: true,
			Ended:     true,
		}, nil
	}

	score += model.TurnScore
	st.RiddleIdx = (idx + 1) % len(Riddles)

	if score >= model.MasteryScore {
		return &game.TurnResult{
			Reply:     fmt.Sprintf("Правильно! Достижение '%s' (🧩) получено! Очки: %d", model.AchievementLogic, score),
			Score:     score,
			State:     &st,
			LogResult: true,
			Ended:     true,
			Mastered:  true,
		}, nil
	}

	return &game.TurnResult{
		Reply:     fmt.Sprintf("Правильно! Очки: %d\n%s", score, Riddles[st.RiddleIdx].Riddle),
		Score:     score,
		State:     &st,
		LogResult: true,
	}, nil
}
