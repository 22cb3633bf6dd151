// Package guess implements the number-guessing mini-game: the bot draws a
// number in [1,100] and replies with higher/lower hints until the user hits it.
package guess

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"weather-games-bot/internal/game"
	"weather-games-bot/internal/model"
)

const (
	// MinTarget and MaxTarget bound the drawn number.
	MinTarget = 1
	MaxTarget = 100
)

// State is the persisted session state.
type State struct {
	Target   int `json:"target"`
	Attempts int `json:"attempts"`
}

// Engine implements the game.Engine interface for number guessing.
type Engine struct {
	rng *rand.Rand
}

// New creates the engine with a time-seeded random source.
func New() *Engine {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates the engine with the given random source.
func NewWithRand(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Name returns the stored game name.
func (e *Engine) Name() string { return model.GameGuess }

// Title returns the display name.
func (e *Engine) Title() string { return "Угадай число" }

// Achievement returns the mastery badge name.
func (e *Engine) Achievement() string { return model.AchievementGuess }

// Start begins a session by drawing the first target.
func (e *Engine) Start() (any, string, string) {
	st := &State{Target: e.draw(), Attempts: 0}
	return st, "Я загадал число от 1 до 100. Угадай:", "Введи число:"
}

// Turn plays one guess.
func (e *Engine) Turn(input string, score int, raw json.RawMessage) (*game.TurnResult, error) {
	guess, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		// Not a number: hint and keep the game open with nothing persisted.
		return &game.TurnResult{
			Reply: "Введи число от 1 до 100! Или напиши 'Меню' для выхода.",
			Score: score,
		}, nil
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode guess state: %w", err)
	}

	attempts := st.Attempts + 1

	switch {
	case guess == st.Target:
		score += model.TurnScore
		if score >= model.MasteryScore {
			st.Attempts = attempts
			return &game.TurnResult{
				Reply:     fmt.Sprintf("Угадал с %d попытки! Достижение '%s' (🎲) получено! Очки: %d", attempts, model.AchievementGuess, score),
				Score:     score,
				State:     &st,
				LogResult: true,
				Ended:     true,
				Mastered:  true,
			}, nil
		}
		next := State{Target: e.draw(), Attempts: 0}
		return &game.TurnResult{
			Reply:     fmt.Sprintf("Угадал с %d попытки! Очки: %d. Я загадал новое число от 1 до 100. Угадай:", attempts, score),
			Score:     score,
			State:     &next,
			LogResult: true,
		}, nil

	case guess < st.Target:
		st.Attempts = attempts
		return &game.TurnResult{
			Reply: "Моё число больше. Попробуй ещё:",
			Score: score,
			State: &st,
		}, nil

	default:
		st.Attempts = attempts
		return &game.TurnResult{
			Reply: "Моё число меньше. Попробуй ещё:",
			Score: score,
			State: &st,
		}, nil
	}
}

// draw picks a fresh target uniformly from [MinTarget, MaxTarget].
func (e *Engine) draw() int {
	return e.rng.Intn(MaxTarget-MinTarget+1) + MinTarget
}
