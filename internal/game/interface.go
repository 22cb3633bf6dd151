// Package game defines the mini-game engine interface and registry.
// Each engine is a pure turn-based state machine over one persisted state
// blob per user; persistence and rewards happen in the service layer.
package game

import "encoding/json"

// TurnResult represents the outcome of one game turn.
type TurnResult struct {
	// Reply is the user-facing message for this turn.
	Reply string

	// Score is the session score after the turn.
	Score int

	// State is the state to persist together with Score.
	// A nil State means the turn left nothing to persist.
	State any

	// LogResult records a score snapshot in the historical results log.
	LogResult bool

	// Ended marks the session as over; the conversation flag must be cleared.
	Ended bool

	// Mastered is set when the score reached the mastery threshold this turn.
	// It implies Ended and triggers the achievement and star reward.
	Mastered bool
}

// Engine defines the interface that all mini-games implement.
type Engine interface {
	// Name returns the stored game name (e.g. "Cities").
	Name() string

	// Title returns the display name shown in menus (e.g. "Города").
	Title() string

	// Achievement returns the badge awarded at the mastery score.
	Achievement() string

	// Start returns the initial session state plus the two messages shown
	// when the game begins: the edited announcement and the follow-up prompt.
	Start() (state any, announcement string, prompt string)

	// Turn plays one move. The input is the raw message text; the engine
	// does its own trimming and casing. The state is the persisted blob
	// from the progress row, decoded by the engine.
	Turn(input string, score int, state json.RawMessage) (*TurnResult, error)
}
