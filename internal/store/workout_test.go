package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestWorkoutRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	w := &Workout{
		ID:       uuid.New().String(),
		Date:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Exercise: "Squats",
		Reps:     12,
		Accuracy: 85,
	}

	if err := s.Workouts().Create(w); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Workouts().GetByID(w.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Exercise != "Squats" {
		t.Errorf("Exercise = %q, want %q", got.Exercise, "Squats")
	}
	if got.Reps != 12 {
		t.Errorf("Reps = %d, want 12", got.Reps)
	}
	if got.Accuracy != 85 {
		t.Errorf("Accuracy = %d, want 85", got.Accuracy)
	}
}

func TestWorkoutRepository_CreateDefaultsDate(t *testing.T) {
	s := newTestStore(t)

	w := &Workout{
		ID:       uuid.New().String(),
		Exercise: "Squats",
		Reps:     5,
		Accuracy: 50,
	}

	if err := s.Workouts().Create(w); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if w.Date.IsZero() {
		t.Error("Create() should default a zero date to now")
	}
}

func TestWorkoutRepository_GetByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Workouts().GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want %v", err, ErrNotFound)
	}
}

func TestWorkoutRepository_ListOrdering(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		w := &Workout{
			ID:       uuid.New().String(),
			Date:     base.AddDate(0, 0, i),
			Exercise: "Squats",
			Reps:     10 + i,
			Accuracy: 80,
		}
		if err := s.Workouts().Create(w); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	workouts, err := s.Workouts().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(workouts) != 3 {
		t.Fatalf("List() returned %d workouts, want 3", len(workouts))
	}

	// Most recent first
	if workouts[0].Reps != 12 {
		t.Errorf("workouts[0].Reps = %d, want 12 (most recent)", workouts[0].Reps)
	}
	for i := 1; i < len(workouts); i++ {
		if workouts[i].Date.After(workouts[i-1].Date) {
			t.Error("workouts should be ordered most recent first")
		}
	}
}

func TestWorkoutRepository_Totals(t *testing.T) {
	s := newTestStore(t)

	// Empty store totals are all zero
	totals, err := s.Workouts().Totals()
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	if totals.Workouts != 0 || totals.Reps != 0 || totals.AvgAccuracy != 0 {
		t.Errorf("empty Totals() = %+v, want zeros", totals)
	}

	for _, w := range []*Workout{
		{ID: uuid.New().String(), Exercise: "Squats", Reps: 10, Accuracy: 80},
		{ID: uuid.New().String(), Exercise: "Squats", Reps: 20, Accuracy: 100},
	} {
		if err := s.Workouts().Create(w); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	totals, err = s.Workouts().Totals()
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	if totals.Workouts != 2 {
		t.Errorf("Workouts = %d, want 2", totals.Workouts)
	}
	if totals.Reps != 30 {
		t.Errorf("Reps = %d, want 30", totals.Reps)
	}
	if totals.AvgAccuracy != 90 {
		t.Errorf("AvgAccuracy = %d, want 90", totals.AvgAccuracy)
	}
}

func TestWorkoutRepository_Delete(t *testing.T) {
	s := newTestStore(t)

	w := &Workout{ID: uuid.New().String(), Exercise: "Squats", Reps: 8, Accuracy: 70}
	if err := s.Workouts().Create(w); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Workouts().Delete(w.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Workouts().GetByID(w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want %v", err, ErrNotFound)
	}

	if err := s.Workouts().Delete(w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of missing workout error = %v, want %v", err, ErrNotFound)
	}
}

func TestSettingsRepository(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Settings().Get(SettingVoiceEnabled); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() of unset key error = %v, want %v", err, ErrNotFound)
	}

	if got := s.Settings().GetDefault(SettingVoiceEnabled, "false"); got != "false" {
		t.Errorf("GetDefault() = %q, want fallback %q", got, "false")
	}

	if err := s.Settings().Set(SettingVoiceEnabled, "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Settings().Get(SettingVoiceEnabled)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "true" {
		t.Errorf("Get() = %q, want %q", got, "true")
	}

	// Set replaces the existing value
	if err := s.Settings().Set(SettingVoiceEnabled, "false"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := s.Settings().GetDefault(SettingVoiceEnabled, "x"); got != "false" {
		t.Errorf("GetDefault() = %q, want %q", got, "false")
	}

	all, err := s.Settings().All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 || all[SettingVoiceEnabled] != "false" {
		t.Errorf("All() = %v, want single voice_enabled=false", all)
	}
}
