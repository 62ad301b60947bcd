package store

import (
	"database/sql"
	"errors"
	"time"
)

// Workout represents one saved workout session.
type Workout struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Exercise string    `json:"exercise"`
	Reps     int       `json:"reps"`
	Accuracy int       `json:"accuracy"`
}

// Totals aggregates saved workouts for the stats display.
type Totals struct {
	Workouts    int `json:"workouts"`
	Reps        int `json:"reps"`
	AvgAccuracy int `json:"avg_accuracy"`
}

// WorkoutRepository provides CRUD operations for workouts.
type WorkoutRepository struct {
	db *sql.DB
}

// Workouts returns the workout repository for this store.
func (s *Store) Workouts() *WorkoutRepository {
	return &WorkoutRepository{db: s.db}
}

// Create inserts a new workout into the database.
func (r *WorkoutRepository) Create(w *Workout) error {
	if w.Date.IsZero() {
		w.Date = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO workouts (id, date, exercise, reps, accuracy)
		 VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.Date, w.Exercise, w.Reps, w.Accuracy,
	)
	return err
}

// GetByID retrieves a workout by its ID.
func (r *WorkoutRepository) GetByID(id string) (*Workout, error) {
	w := &Workout{}

	err := r.db.QueryRow(
		`SELECT id, date, exercise, reps, accuracy
		 FROM workouts WHERE id = ?`,
		id,
	).Scan(&w.ID, &w.Date, &w.Exercise, &w.Reps, &w.Accuracy)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return w, nil
}

// List retrieves all workouts, most recent first.
func (r *WorkoutRepository) List() ([]*Workout, error) {
	rows, err := r.db.Query(
		`SELECT id, date, exercise, reps, accuracy
		 FROM workouts ORDER BY date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w := &Workout{}
		if err := rows.Scan(&w.ID, &w.Date, &w.Exercise, &w.Reps, &w.Accuracy); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// Totals returns aggregate counts over all saved workouts.
func (r *WorkoutRepository) Totals() (*Totals, error) {
	t := &Totals{}

	err := r.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(reps), 0),
		        CAST(COALESCE(AVG(accuracy), 0) AS INTEGER)
		 FROM workouts`,
	).Scan(&t.Workouts, &t.Reps, &t.AvgAccuracy)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Delete removes a workout from the database by its ID.
func (r *WorkoutRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
