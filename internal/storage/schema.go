// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines workout_logs, exercises, exercise_data, notes and daily_metrics.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workout_logs (
		id TEXT PRIMARY KEY,
		session_name TEXT NOT NULL,
		date TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		exercise_name TEXT NOT NULL UNIQUE COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS exercise_data (
		id TEXT PRIMARY KEY,
		workout_log_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		sets INTEGER,
		reps INTEGER,
		weight REAL,
		FOREIGN KEY (workout_log_id) REFERENCES workout_logs(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		workout_log_id TEXT NOT NULL,
		exercise_id TEXT,
		note_text TEXT NOT NULL,
		category TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		FOREIGN KEY (workout_log_id) REFERENCES workout_logs(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS daily_metrics (
		id TEXT PRIMARY KEY,
		workout_log_id TEXT NOT NULL,
		metric_name TEXT NOT NULL,
		metric_value TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		FOREIGN KEY (workout_log_id) REFERENCES workout_logs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_workout_logs_date ON workout_logs(date DESC);
	CREATE INDEX IF NOT EXISTS idx_exercise_data_log ON exercise_data(workout_log_id);
	CREATE INDEX IF NOT EXISTS idx_exercise_data_exercise ON exercise_data(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_notes_log ON notes(workout_log_id);
	CREATE INDEX IF NOT EXISTS idx_notes_exercise ON notes(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_daily_metrics_log ON daily_metrics(workout_log_id);
	CREATE INDEX IF NOT EXISTS idx_daily_metrics_name ON daily_metrics(metric_name);
	`

	_, err := d.db.Exec(schema)
	return err
}
