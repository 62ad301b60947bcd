package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// historyHeader is the column layout of the CSV history file.
var historyHeader = []string{"date", "exercise", "reps", "accuracy"}

// History appends saved workouts to a local CSV file. The file is an
// append-only log: rows are never rewritten, and the header is written only
// when the file is created.
type History struct {
	path string
}

// NewHistory creates a History writing to the given CSV path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Path returns the CSV file location.
func (h *History) Path() string {
	return h.path
}

// Append writes one workout row, creating the file with a header first if
// needed.
func (h *History) Append(w *Workout) error {
	_, statErr := os.Stat(h.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if writeHeader {
		if err := cw.Write(historyHeader); err != nil {
			return fmt.Errorf("write history header: %w", err)
		}
	}

	row := []string{
		w.Date.Format("2006-01-02 15:04:05"),
		w.Exercise,
		fmt.Sprintf("%d", w.Reps),
		fmt.Sprintf("%d", w.Accuracy),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write history row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// Read parses the CSV log back into workout records, oldest first.
// A missing file yields an empty history, not an error.
func (h *History) Read() ([]*Workout, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}

	var workouts []*Workout
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == historyHeader[0] {
			continue // header row
		}
		if len(rec) != len(historyHeader) {
			return nil, fmt.Errorf("history row %d has %d columns, want %d", i, len(rec), len(historyHeader))
		}

		date, err := time.Parse("2006-01-02 15:04:05", rec[0])
		if err != nil {
			return nil, fmt.Errorf("history row %d date: %w", i, err)
		}

		var reps, accuracy int
		if _, err := fmt.Sscanf(rec[2], "%d", &reps); err != nil {
			return nil, fmt.Errorf("history row %d reps: %w", i, err)
		}
		if _, err := fmt.Sscanf(rec[3], "%d", &accuracy); err != nil {
			return nil, fmt.Errorf("history row %d accuracy: %w", i, err)
		}

		workouts = append(workouts, &Workout{
			Date:     date,
			Exercise: rec[1],
			Reps:     reps,
			Accuracy: accuracy,
		})
	}

	return workouts, nil
}
