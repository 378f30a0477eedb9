// ABOUTME: WorkoutLog, Exercise, and ExerciseRecord models for the workout journal.
// ABOUTME: A log owns the records derived from its raw text; exercises are shared.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for WorkoutLog.Date everywhere.
const DateLayout = "2006-01-02"

// WorkoutLog is one free-text training note as submitted by the user.
type WorkoutLog struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	SessionName string    `json:"session_name" yaml:"session_name"`
	Date        time.Time `json:"date" yaml:"date"`
	RawText     string    `json:"raw_text" yaml:"raw_text"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewWorkoutLog creates a new WorkoutLog with generated UUID, dated today.
func NewWorkoutLog(sessionName, rawText string) *WorkoutLog {
	now := time.Now()
	return &WorkoutLog{
		ID:          uuid.New(),
		SessionName: sessionName,
		Date:        TruncateDate(now),
		RawText:     rawText,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithDate sets the calendar date of the session.
func (w *WorkoutLog) WithDate(t time.Time) *WorkoutLog {
	w.Date = TruncateDate(t)
	return w
}

// DateString returns the log date as YYYY-MM-DD.
func (w *WorkoutLog) DateString() string {
	return w.Date.Format(DateLayout)
}

// TruncateDate drops the clock part of t, keeping its calendar date.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// Exercise is a named movement shared across logs.
type Exercise struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// NormalizeExerciseName trims and collapses inner whitespace so that
// "  Pull   ups " and "Pull ups" resolve to the same exercise.
func NormalizeExerciseName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ExerciseRecord is one exercise mention within a log. Sets, Reps and
// Weight are nil when the log gave no fixed value (e.g. AMRAP sets).
type ExerciseRecord struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	WorkoutLogID uuid.UUID `json:"workout_log_id" yaml:"workout_log_id"`
	ExerciseID   uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName string    `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	Sets         *int      `json:"sets" yaml:"sets"`
	Reps         *int      `json:"reps" yaml:"reps"`
	Weight       *float64  `json:"weight" yaml:"weight"`
}

// NewExerciseRecord creates an ExerciseRecord linking a log and an exercise.
func NewExerciseRecord(logID, exerciseID uuid.UUID, sets, reps *int, weight *float64) *ExerciseRecord {
	return &ExerciseRecord{
		ID:           uuid.New(),
		WorkoutLogID: logID,
		ExerciseID:   exerciseID,
		Sets:         sets,
		Reps:         reps,
		Weight:       weight,
	}
}

// HistoryEntry is an ExerciseRecord joined with its log date, used by the
// per-exercise history views.
type HistoryEntry struct {
	Date         time.Time `json:"date"`
	WorkoutLogID uuid.UUID `json:"workout_log_id"`
	SessionName  string    `json:"session_name"`
	Sets         *int      `json:"sets"`
	Reps         *int      `json:"reps"`
	Weight       *float64  `json:"weight"`
}

// ExerciseHistory is everything recorded for one exercise, oldest first.
type ExerciseHistory struct {
	Exercise Exercise       `json:"exercise"`
	Entries  []HistoryEntry `json:"entries"`
	Notes    []DatedNote    `json:"notes"`
}

// LogDetail is a WorkoutLog with all of its derived rows.
type LogDetail struct {
	WorkoutLog `yaml:",inline"`
	Exercises  []ExerciseRecord `json:"exercises" yaml:"exercises"`
	Notes      []Note           `json:"notes" yaml:"notes"`
	Metrics    []DailyMetric    `json:"metrics" yaml:"metrics"`
}

// IsDerivedEmpty reports whether the log has no structured children.
func (d *LogDetail) IsDerivedEmpty() bool {
	return len(d.Exercises) == 0 && len(d.Notes) == 0 && len(d.Metrics) == 0
}

// IntPtr and FloatPtr are small helpers for optional numeric fields.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
