// Package logic tests for the riddle engine.
package logic

import (
	"encoding/json"
	"strings"
	"testing"

	"weather-games-bot/internal/model"
)

func mustState(t *testing.T, st *State) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return raw
}

func TestStartAtFirstRiddle(t *testing.T) {
	e := New()

	state, announcement, prompt := e.Start()
	if st := state.(*State); st.RiddleIdx != 0 {
		t.Errorf("riddle index = %d, want 0", st.RiddleIdx)
	}
	if announcement != Riddles[0].Riddle {
		t.Errorf("announcement = %q", announcement)
	}
	if prompt != "Введи ответ:" {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestCorrectAnswerAdvances(t *testing.T) {
	e := New()
	raw := mustState(t, &State{RiddleIdx: 0})

	result, err := e.Turn("8", 0, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if result.Score != 10 || !result.LogResult || result.Ended {
		t.Errorf("unexpected result: %+v", result)
	}
	if st := result.State.(*State); st.RiddleIdx != 1 {
		t.Errorf("riddle index = %d, want 1", st.RiddleIdx)
	}
	if !strings.Contains(result.Reply, "Правильно! Очки: 10") ||
		!strings.Contains(result.Reply, Riddles[1].Riddle) {
		t.Errorf("reply = %q", result.Reply)
	}
}

func TestAnswerNormalized(t *testing.T) {
	e := New()
	raw := mustState(t, &State{RiddleIdx: 1})

	result, err := e.Turn("  ВРЕМЯ ", 10, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if result.Score != 20 || result.Ended {
		t.Errorf("normalized answer must be accepted: %+v", result)
	}
}

func TestWrongAnswerRevealsAndEnds(t *testing.T) {
	e := New()
	raw := mustState(t, &State{RiddleIdx: 1})

	result, err := e.Turn("дождь", 10, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if result.Reply != "Неверно! Правильный ответ: время. Игра окончена." {
		t.Errorf("reply = %q", result.Reply)
	}
	if !result.Ended || !result.LogResult || result.Mastered {
		t.Errorf("wrong answer must end and log: %+v", result)
	}
	if result.State != nil || result.Score != 10 {
		t.Errorf("wrong answer must not touch score or state: %+v", result)
	}
}

func TestRiddleListWraps(t *testing.T) {
	e := New()
	raw := mustState(t, &State{RiddleIdx: 2})

	result, err := e.Turn("карта", 20, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if st := result.State.(*State); st.RiddleIdx != 0 {
		t.Errorf("riddle index = %d, want wrap to 0", st.RiddleIdx)
	}
	if !strings.Contains(result.Reply, Riddles[0].Riddle) {
		t.Errorf("reply = %q", result.Reply)
	}
}

func TestMasteryEndsGame(t *testing.T) {
	e := New()
	raw := mustState(t, &State{RiddleIdx: 0})

	result, err := e.Turn("8", model.MasteryScore-model.TurnScore, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if !result.Mastered || !result.Ended {
		t.Errorf("expected mastery: %+v", result)
	}
	if !strings.Contains(result.Reply, model.AchievementLogic) {
		t.Errorf("reply should announce the achievement: %q", result.Reply)
	}
}
