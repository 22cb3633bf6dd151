package game

import (
	"encoding/json"
	"testing"
)

type fakeEngine struct {
	name string
}

func (f *fakeEngine) Name() string                 { return f.name }
func (f *fakeEngine) Title() string                { return "Fake" }
func (f *fakeEngine) Achievement() string          { return "Fake Master" }
func (f *fakeEngine) Start() (any, string, string) { return nil, "start", "prompt" }
func (f *fakeEngine) Turn(input string, score int, raw json.RawMessage) (*TurnResult, error) {
	return &TurnResult{Reply: "ok", Score: score}, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&fakeEngine{name: "fake"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	e, ok := r.Get("fake")
	if !ok || e.Name() != "fake" {
		t.Errorf("Get(fake) = %v, %v", e, ok)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(nil); err == nil {
		t.Error("nil engine must be rejected")
	}
	if err := r.Register(&fakeEngine{name: ""}); err == nil {
		t.Error("empty name must be rejected")
	}
}

func TestRegistryNamesAndCount(t *testing.T) {
	r := NewRegistry()

	_ = r.Register(&fakeEngine{name: "a"})
	_ = r.Register(&fakeEngine{name: "b"})
	_ = r.Register(&fakeEngine{name: "a"}) // replaces, not duplicates

	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}
	names := r.Names()
	if len(names) != 2 {
		t.Errorf("Names = %v", names)
	}
}
