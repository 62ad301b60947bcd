package session

import (
	"errors"
	"testing"

	"github.com/smitra/baithak/internal/exercise"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager()

	s := m.Create()
	if s.ID == "" {
		t.Fatal("Create() returned session with empty ID")
	}
	if s.Counter == nil {
		t.Fatal("Create() returned session without counter")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session instance")
	}
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager()

	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager()

	a := m.Create()
	b := m.Create()

	// Drive a rep on session a only
	a.Counter.Update(170, 170)
	a.Counter.Update(80, 80)
	a.Counter.Update(170, 170)

	if got := a.Counter.Snapshot().Count; got != 1 {
		t.Errorf("session a Count = %d, want 1", got)
	}
	if got := b.Counter.Snapshot().Count; got != 0 {
		t.Errorf("session b Count = %d, want 0 (isolated from a)", got)
	}
}

func TestManager_Reset(t *testing.T) {
	m := NewManager()

	s := m.Create()
	s.Counter.Update(170, 170)
	s.Counter.Update(80, 80)
	s.Counter.Update(170, 170)

	if err := m.Reset(s.ID); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	state := s.Counter.Snapshot()
	if state.Count != 0 || state.Stage != exercise.StageUp || state.Accuracy != 0 {
		t.Errorf("state after reset = %+v, want initial state", state)
	}

	if err := m.Reset("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reset() error = %v, want %v", err, ErrNotFound)
	}
}

func TestManager_RemoveAndList(t *testing.T) {
	m := NewManager()

	a := m.Create()
	b := m.Create()

	if got := len(m.List()); got != 2 {
		t.Fatalf("List() returned %d sessions, want 2", got)
	}

	m.Remove(a.ID)

	ids := m.List()
	if len(ids) != 1 || ids[0] != b.ID {
		t.Errorf("List() after remove = %v, want [%s]", ids, b.ID)
	}

	if _, err := m.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after remove error = %v, want %v", err, ErrNotFound)
	}
}
