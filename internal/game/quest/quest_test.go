// Package quest tests for the linear quest engine.
package quest

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

func TestStartAtFirstStage(t *testing.T) {
	e := New()

	state, announcement, prompt := e.Start()
	if st := state.(*State); st.Stage != 0 {
		t.Errorf("stage = %d, want 0", st.Stage)
	}
	if announcement != Stages[0] {
		t.Errorf("announcement = %q", announcement)
	}
	if prompt != "Введи ответ:" {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestFullRun(t *testing.T) {
	e := New()

	state := mustState(t, &State{Stage: 0})
	score := 0
	inputs := []string{"вперёд", "да", "ДА"}

	for i, input := range inputs {
		result, err := e.Turn(input, score, state)
		if err != nil {
			t.Fatalf("turn %d failed: %v", i, err)
		}
		if result.Score != score+model.TurnScore {
			t.Fatalf("turn %d: score = %d, want %d", i, result.Score, score+model.TurnScore)
		}
		if !result.LogResult {
			t.Fatalf("turn %d: accepted answer must log a result", i)
		}
		score = result.Score

		st := result.State.(*State)
		if st.Stage != i+1 {
			t.Fatalf("turn %d: stage = %d, want %d", i, st.Stage, i+1)
		}
		state = mustState(t, st)

		last := i == len(inputs)-1
		if result.Ended != last {
			t.Fatalf("turn %d: ended = %v", i, result.Ended)
		}
		if last && !strings.Contains(result.Reply, "Ты прошёл квест! Очки: 30") {
			t.Errorf("final reply = %q", result.Reply)
		}
		if !last && result.Reply != Stages[i+1] {
			t.Errorf("turn %d: reply = %q, want next stage prompt", i, result.Reply)
		}
	}
}

func TestWrongChoiceFails(t *testing.T) {
	e := New()
	raw := mustState(t, &State{Stage: 1})

	result, err := e.Turn("назад", 10, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if result.Reply != "Неверный выбор, квест провален!" {
		t.Errorf("reply = %q", result.Reply)
	}
	if !result.Ended || !result.LogResult || result.Mastered {
		t.Errorf("failure must end and log: %+v", result)
	}
	if result.State != nil || result.Score != 10 {
		t.Errorf("failure must not touch score or state: %+v", result)
	}
}

func TestContinuationPastLastStageFails(t *testing.T) {
	e := New()
	raw := mustState(t, &State{Stage: 3})

	result, err := e.Turn("да", 30, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if result.Reply != "Неверный выбор, квест провален!" || !result.Ended {
		t.Errorf("stale stage must fail the quest: %+v", result)
	}
}

func TestMasteryOnCompletion(t *testing.T) {
	e := New()
	raw := mustState(t, &State{Stage: 2})

	result, err := e.Turn("да", model.MasteryScore-model.TurnScore, raw)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	if !result.Mastered || !result.Ended {
		t.Errorf("expected mastery: %+v", result)
	}
	if !strings.Contains(result.Reply, model.AchievementQuest) {
		t.Errorf("reply should announce the achievement: %q", result.Reply)
	}
}
