// ABOUTME: WorkoutLog CRUD operations for SQLite storage.
// ABOUTME: Resolves IDs by prefix and loads a log together with its derived rows.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/models"
)

const logColumns = `id, session_name, date, raw_text, created_at, updated_at`

// CreateLog stores a new workout log in its own commit.
func (d *DB) CreateLog(ctx context.Context, w *models.WorkoutLog) error {
	return insertLog(ctx, d.db, w)
}

// GetLog retrieves a workout log by ID or ID prefix (without derived rows).
func (d *DB) GetLog(ctx context.Context, idOrPrefix string) (*models.WorkoutLog, error) {
	id, err := d.resolveLogID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM workout_logs WHERE id = ?`, id)
	w, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return w, err
}

// GetLogDetail retrieves a workout log with its exercise records, notes
// and daily metrics.
func (d *DB) GetLogDetail(ctx context.Context, idOrPrefix string) (*models.LogDetail, error) {
	w, err := d.GetLog(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	detail := &models.LogDetail{WorkoutLog: *w}

	if detail.Exercises, err = d.ListExerciseRecords(ctx, w.ID); err != nil {
		return nil, err
	}
	if detail.Notes, err = d.ListNotes(ctx, w.ID); err != nil {
		return nil, err
	}
	if detail.Metrics, err = d.ListDailyMetrics(ctx, w.ID); err != nil {
		return nil, err
	}

	return detail, nil
}

// ListLogs retrieves workout logs, most recent session first.
func (d *DB) ListLogs(ctx context.Context, limit int) ([]*models.WorkoutLog, error) {
	query := `SELECT ` + logColumns + ` FROM workout_logs ORDER BY date DESC, created_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WorkoutLog
	for rows.Next() {
		w, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

func insertLog(ctx context.Context, q queryer, w *models.WorkoutLog) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO workout_logs (id, session_name, date, raw_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID.String(),
		w.SessionName,
		w.DateString(),
		w.RawText,
		w.CreatedAt.Format(time.RFC3339Nano),
		w.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	return nil
}

func updateLog(ctx context.Context, q queryer, w *models.WorkoutLog) error {
	result, err := q.ExecContext(ctx, `
		UPDATE workout_logs
		SET session_name = ?, date = ?, raw_text = ?, updated_at = ?
		WHERE id = ?`,
		w.SessionName,
		w.DateString(),
		w.RawText,
		w.UpdatedAt.Format(time.RFC3339Nano),
		w.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update log: %w", err)
	}
	return requireAffected(result, "update log", w.ID.String())
}

func deleteLog(ctx context.Context, q queryer, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, "DELETE FROM workout_logs WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return requireAffected(result, "delete log", id.String())
}

func requireAffected(result sql.Result, op, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
	}
	return nil
}

// resolveLogID finds the full ID from a prefix.
func (d *DB) resolveLogID(ctx context.Context, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if !isIDPrefix(idOrPrefix) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT id FROM workout_logs WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve log ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan log ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve log ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple logs", ErrAmbiguousPrefix, idOrPrefix)
	}

	return matches[0], nil
}

// isIDPrefix reports whether s only holds UUID characters, which also keeps
// LIKE wildcards out of the prefix query.
func isIDPrefix(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F', r == '-':
		default:
			return false
		}
	}
	return true
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLog scans one workout_logs row selected with logColumns.
func scanLog(row rowScanner) (*models.WorkoutLog, error) {
	var w models.WorkoutLog
	var idStr, date, createdAt, updatedAt string

	if err := row.Scan(&idStr, &w.SessionName, &date, &w.RawText, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan log: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Date, _ = models.ParseDate(date)
	w.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	w.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	return &w, nil
}
