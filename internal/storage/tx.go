// ABOUTME: Transaction wrapper exposing the write half of the persistence gateway.
// ABOUTME: Each lifecycle operation runs its writes inside one WithTx call.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/models"
)

// Tx is an open transaction. It is only valid inside the WithTx callback.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a transaction, committing if fn returns nil and
// rolling back otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// InsertLog stores a new workout log.
func (t *Tx) InsertLog(ctx context.Context, w *models.WorkoutLog) error {
	return insertLog(ctx, t.tx, w)
}

// UpdateLog rewrites the session name, date and raw text of a log.
func (t *Tx) UpdateLog(ctx context.Context, w *models.WorkoutLog) error {
	return updateLog(ctx, t.tx, w)
}

// DeleteLog removes the log row itself.
func (t *Tx) DeleteLog(ctx context.Context, id uuid.UUID) error {
	return deleteLog(ctx, t.tx, id)
}

// GetOrCreateExercise resolves an exercise by normalized name, creating it
// on first use.
func (t *Tx) GetOrCreateExercise(ctx context.Context, name string) (*models.Exercise, error) {
	return getOrCreateExercise(ctx, t.tx, name)
}

// InsertExerciseRecord stores one exercise mention.
func (t *Tx) InsertExerciseRecord(ctx context.Context, r *models.ExerciseRecord) error {
	return insertExerciseRecord(ctx, t.tx, r)
}

// InsertNote stores one note.
func (t *Tx) InsertNote(ctx context.Context, n *models.Note) error {
	return insertNote(ctx, t.tx, n)
}

// InsertDailyMetric stores one daily metric.
func (t *Tx) InsertDailyMetric(ctx context.Context, m *models.DailyMetric) error {
	return insertDailyMetric(ctx, t.tx, m)
}

// DeleteChildren removes every derived row (metrics, exercise records,
// notes) belonging to a log, leaving the log row in place.
func (t *Tx) DeleteChildren(ctx context.Context, logID uuid.UUID) error {
	return deleteChildren(ctx, t.tx, logID)
}
