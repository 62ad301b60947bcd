package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHistory_ReadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.csv"))

	workouts, err := h.Read()
	if err != nil {
		t.Fatalf("Read() of missing file error = %v", err)
	}
	if workouts != nil {
		t.Errorf("Read() of missing file = %v, want nil", workouts)
	}
}

func TestHistory_AppendAndRead(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.csv"))

	first := &Workout{
		Date:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Exercise: "Squats",
		Reps:     12,
		Accuracy: 85,
	}
	second := &Workout{
		Date:     time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC),
		Exercise: "Squats",
		Reps:     15,
		Accuracy: 90,
	}

	if err := h.Append(first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := h.Append(second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	workouts, err := h.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("Read() returned %d workouts, want 2", len(workouts))
	}

	if !workouts[0].Date.Equal(first.Date) {
		t.Errorf("workouts[0].Date = %v, want %v", workouts[0].Date, first.Date)
	}
	if workouts[0].Reps != 12 || workouts[0].Accuracy != 85 {
		t.Errorf("workouts[0] = %+v, want reps 12 accuracy 85", workouts[0])
	}
	if workouts[1].Exercise != "Squats" || workouts[1].Reps != 15 {
		t.Errorf("workouts[1] = %+v, want Squats with 15 reps", workouts[1])
	}
}

func TestHistory_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	h := NewHistory(path)

	w := &Workout{Date: time.Now(), Exercise: "Squats", Reps: 5, Accuracy: 60}
	for i := 0; i < 3; i++ {
		if err := h.Append(w); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read history file: %v", err)
	}

	if n := strings.Count(string(data), "date,exercise,reps,accuracy"); n != 1 {
		t.Errorf("header appears %d times, want 1", n)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Errorf("file has %d lines, want 4 (header + 3 rows)", len(lines))
	}
}
