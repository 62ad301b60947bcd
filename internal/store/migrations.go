package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Workouts table - one row per explicitly saved workout session
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			exercise TEXT NOT NULL,
			reps INTEGER NOT NULL CHECK(reps >= 0),
			accuracy INTEGER NOT NULL CHECK(accuracy BETWEEN 0 AND 100),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_exercise ON workouts(exercise)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
