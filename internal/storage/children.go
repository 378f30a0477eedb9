// ABOUTME: Insert, delete and list operations for a log's derived rows.
// ABOUTME: Covers exercise_data, notes and daily_metrics plus the metrics feed.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/models"
)

func insertExerciseRecord(ctx context.Context, q queryer, r *models.ExerciseRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO exercise_data (id, workout_log_id, exercise_id, sets, reps, weight)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(),
		r.WorkoutLogID.String(),
		r.ExerciseID.String(),
		intArg(r.Sets),
		intArg(r.Reps),
		floatArg(r.Weight),
	)
	if err != nil {
		return fmt.Errorf("insert exercise record: %w", err)
	}
	return nil
}

func insertNote(ctx context.Context, q queryer, n *models.Note) error {
	var exerciseID sql.NullString
	if n.ExerciseID != nil {
		exerciseID = sql.NullString{String: n.ExerciseID.String(), Valid: true}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO notes (id, workout_log_id, exercise_id, note_text, category, sentiment)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID.String(),
		n.WorkoutLogID.String(),
		exerciseID,
		n.Text,
		n.Category,
		string(n.Sentiment),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func insertDailyMetric(ctx context.Context, q queryer, m *models.DailyMetric) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO daily_metrics (id, workout_log_id, metric_name, metric_value, sentiment)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID.String(),
		m.WorkoutLogID.String(),
		m.MetricName,
		m.MetricValue,
		string(m.Sentiment),
	)
	if err != nil {
		return fmt.Errorf("insert daily metric: %w", err)
	}
	return nil
}

func deleteChildren(ctx context.Context, q queryer, logID uuid.UUID) error {
	for _, table := range []string{"daily_metrics", "exercise_data", "notes"} {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE workout_log_id = ?", logID.String()); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

// ListExerciseRecords returns a log's exercise records in insertion order.
func (d *DB) ListExerciseRecords(ctx context.Context, logID uuid.UUID) ([]models.ExerciseRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT e.id, e.exercise_id, x.exercise_name, e.sets, e.reps, e.weight
		FROM exercise_data e
		JOIN exercises x ON x.id = e.exercise_id
		WHERE e.workout_log_id = ?
		ORDER BY e.rowid`,
		logID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list exercise records: %w", err)
	}
	defer rows.Close()

	var records []models.ExerciseRecord
	for rows.Next() {
		r := models.ExerciseRecord{WorkoutLogID: logID}
		var idStr, exerciseID string
		var sets, reps sql.NullInt64
		var weight sql.NullFloat64
		if err := rows.Scan(&idStr, &exerciseID, &r.ExerciseName, &sets, &reps, &weight); err != nil {
			return nil, fmt.Errorf("scan exercise record: %w", err)
		}
		r.ID, _ = uuid.Parse(idStr)
		r.ExerciseID, _ = uuid.Parse(exerciseID)
		r.Sets = nullIntPtr(sets)
		r.Reps = nullIntPtr(reps)
		r.Weight = nullFloatPtr(weight)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListNotes returns a log's notes in insertion order.
func (d *DB) ListNotes(ctx context.Context, logID uuid.UUID) ([]models.Note, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT n.id, n.exercise_id, x.exercise_name, n.note_text, n.category, n.sentiment
		FROM notes n
		LEFT JOIN exercises x ON x.id = n.exercise_id
		WHERE n.workout_log_id = ?
		ORDER BY n.rowid`,
		logID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		n := models.Note{WorkoutLogID: logID}
		var idStr, sentiment string
		var exerciseID, exerciseName sql.NullString
		if err := rows.Scan(&idStr, &exerciseID, &exerciseName, &n.Text, &n.Category, &sentiment); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.ID, _ = uuid.Parse(idStr)
		if exerciseID.Valid {
			if id, err := uuid.Parse(exerciseID.String); err == nil {
				n.ExerciseID = &id
			}
		}
		n.ExerciseName = exerciseName.String
		n.Sentiment = models.Sentiment(sentiment)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ListDailyMetrics returns a log's daily metrics in insertion order.
func (d *DB) ListDailyMetrics(ctx context.Context, logID uuid.UUID) ([]models.DailyMetric, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, metric_name, metric_value, sentiment
		FROM daily_metrics
		WHERE workout_log_id = ?
		ORDER BY rowid`,
		logID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list daily metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.DailyMetric
	for rows.Next() {
		m := models.DailyMetric{WorkoutLogID: logID}
		var idStr, sentiment string
		if err := rows.Scan(&idStr, &m.MetricName, &m.MetricValue, &sentiment); err != nil {
			return nil, fmt.Errorf("scan daily metric: %w", err)
		}
		m.ID, _ = uuid.Parse(idStr)
		m.Sentiment = models.Sentiment(sentiment)
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// MetricsFeed returns the most recent daily metrics across all logs in
// chronological order. A nil metricName returns every metric; otherwise the
// name is matched case-insensitively.
func (d *DB) MetricsFeed(ctx context.Context, metricName *string, limit int) ([]models.DatedMetric, error) {
	query := `
		SELECT m.id, m.workout_log_id, m.metric_name, m.metric_value, m.sentiment,
		       w.date, w.session_name
		FROM daily_metrics m
		JOIN workout_logs w ON w.id = m.workout_log_id`
	var args []any
	if metricName != nil {
		query += ` WHERE m.metric_name = ? COLLATE NOCASE`
		args = append(args, *metricName)
	}
	query += ` ORDER BY w.date DESC, w.created_at DESC, m.rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("metrics feed: %w", err)
	}
	defer rows.Close()

	var feed []models.DatedMetric
	for rows.Next() {
		var m models.DatedMetric
		var idStr, logID, sentiment, date string
		if err := rows.Scan(&idStr, &logID, &m.MetricName, &m.MetricValue, &sentiment, &date, &m.SessionName); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		m.ID, _ = uuid.Parse(idStr)
		m.WorkoutLogID, _ = uuid.Parse(logID)
		m.Sentiment = models.Sentiment(sentiment)
		m.Date, _ = models.ParseDate(date)
		feed = append(feed, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("metrics feed: %w", err)
	}

	for i, j := 0, len(feed)-1; i < j; i, j = i+1, j-1 {
		feed[i], feed[j] = feed[j], feed[i]
	}
	return feed, nil
}

func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
