// ABOUTME: Exercise get-or-create and lookup operations for SQLite storage.
// ABOUTME: Names are unique case-insensitively after whitespace normalization.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/models"
)

// GetOrCreateExercise resolves an exercise by name outside a transaction.
func (d *DB) GetOrCreateExercise(ctx context.Context, name string) (*models.Exercise, error) {
	return getOrCreateExercise(ctx, d.db, name)
}

// getOrCreateExercise inserts the exercise if no row with an equal name
// exists and then reads back whichever row owns the name. Two callers
// racing on the same name end up with the same row.
func getOrCreateExercise(ctx context.Context, q queryer, name string) (*models.Exercise, error) {
	name = models.NormalizeExerciseName(name)

	_, err := q.ExecContext(ctx, `
		INSERT INTO exercises (id, exercise_name) VALUES (?, ?)
		ON CONFLICT(exercise_name) DO NOTHING`,
		uuid.New().String(), name,
	)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	ex, err := getExercise(ctx, q, name)
	if err != nil {
		return nil, fmt.Errorf("get exercise after create: %w", err)
	}
	return ex, nil
}

// GetExercise looks up an exercise by name, ignoring case and extra spaces.
func (d *DB) GetExercise(ctx context.Context, name string) (*models.Exercise, error) {
	return getExercise(ctx, d.db, models.NormalizeExerciseName(name))
}

func getExercise(ctx context.Context, q queryer, name string) (*models.Exercise, error) {
	var ex models.Exercise
	var idStr string

	err := q.QueryRowContext(ctx,
		`SELECT id, exercise_name FROM exercises WHERE exercise_name = ?`, name,
	).Scan(&idStr, &ex.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: exercise %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}

	ex.ID, _ = uuid.Parse(idStr)
	return &ex, nil
}

// ListExercises returns every known exercise sorted by name.
func (d *DB) ListExercises(ctx context.Context) ([]*models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, exercise_name FROM exercises ORDER BY exercise_name`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var ex models.Exercise
		var idStr string
		if err := rows.Scan(&idStr, &ex.Name); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		ex.ID, _ = uuid.Parse(idStr)
		exercises = append(exercises, &ex)
	}
	return exercises, rows.Err()
}

// ExerciseHistory returns every record and exercise note for one exercise,
// oldest session first.
func (d *DB) ExerciseHistory(ctx context.Context, exerciseID uuid.UUID) (*models.ExerciseHistory, error) {
	var h models.ExerciseHistory
	var idStr string

	err := d.db.QueryRowContext(ctx,
		`SELECT id, exercise_name FROM exercises WHERE id = ?`, exerciseID.String(),
	).Scan(&idStr, &h.Exercise.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: exercise %s", ErrNotFound, exerciseID)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	h.Exercise.ID = exerciseID

	rows, err := d.db.QueryContext(ctx, `
		SELECT w.date, w.id, w.session_name, e.sets, e.reps, e.weight
		FROM exercise_data e
		JOIN workout_logs w ON w.id = e.workout_log_id
		WHERE e.exercise_id = ?
		ORDER BY w.date ASC, w.created_at ASC, e.rowid ASC`,
		exerciseID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("exercise history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.HistoryEntry
		var date, logID string
		var sets, reps sql.NullInt64
		var weight sql.NullFloat64
		if err := rows.Scan(&date, &logID, &entry.SessionName, &sets, &reps, &weight); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Date, _ = models.ParseDate(date)
		entry.WorkoutLogID, _ = uuid.Parse(logID)
		entry.Sets = nullIntPtr(sets)
		entry.Reps = nullIntPtr(reps)
		entry.Weight = nullFloatPtr(weight)
		h.Entries = append(h.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise history: %w", err)
	}

	noteRows, err := d.db.QueryContext(ctx, `
		SELECT w.date, n.note_text, n.sentiment
		FROM notes n
		JOIN workout_logs w ON w.id = n.workout_log_id
		WHERE n.exercise_id = ?
		ORDER BY w.date ASC, w.created_at ASC, n.rowid ASC`,
		exerciseID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("exercise notes: %w", err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var n models.DatedNote
		var date, sentiment string
		if err := noteRows.Scan(&date, &n.Text, &sentiment); err != nil {
			return nil, fmt.Errorf("scan exercise note: %w", err)
		}
		n.Date, _ = models.ParseDate(date)
		n.Sentiment = models.Sentiment(sentiment)
		h.Notes = append(h.Notes, n)
	}

	return &h, noteRows.Err()
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
