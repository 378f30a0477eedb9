// ABOUTME: Tests for WorkoutLog, Exercise and ExerciseRecord models.
// ABOUTME: Validates constructors, date handling, and name normalization.
package models

import (
	"testing"
	"time"
)

func TestNewWorkoutLog(t *testing.T) {
	w := NewWorkoutLog("Push day", "Bench\n- 5x5 80kg")

	if w.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if w.SessionName != "Push day" {
		t.Errorf("SessionName = %s, want Push day", w.SessionName)
	}
	if w.Date.IsZero() {
		t.Error("expected Date to be set")
	}
	if w.Date.Hour() != 0 || w.Date.Minute() != 0 {
		t.Errorf("expected Date without clock part, got %v", w.Date)
	}
}

func TestWorkoutLogWithDate(t *testing.T) {
	d := time.Date(2025, time.March, 4, 18, 30, 0, 0, time.Local)
	w := NewWorkoutLog("Legs", "Squat").WithDate(d)

	if got := w.DateString(); got != "2025-03-04" {
		t.Errorf("DateString() = %s, want 2025-03-04", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-01-31", false},
		{" 2025-01-31 ", false},
		{"31-01-2025", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeExerciseName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Pull ups", "Pull ups"},
		{"  Pull   ups ", "Pull ups"},
		{"Inclined\tBench press", "Inclined Bench press"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeExerciseName(tt.input); got != tt.want {
				t.Errorf("NormalizeExerciseName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewExerciseRecord(t *testing.T) {
	w := NewWorkoutLog("Pull", "Pull ups")
	ex := Exercise{Name: "Pull ups"}
	r := NewExerciseRecord(w.ID, ex.ID, IntPtr(6), nil, FloatPtr(15))

	if r.WorkoutLogID != w.ID {
		t.Error("expected WorkoutLogID to match")
	}
	if r.Sets == nil || *r.Sets != 6 {
		t.Error("expected Sets to be 6")
	}
	if r.Reps != nil {
		t.Error("expected Reps to be absent")
	}
	if r.Weight == nil || *r.Weight != 15.0 {
		t.Error("expected Weight to be 15.0")
	}
}

func TestLogDetailIsDerivedEmpty(t *testing.T) {
	d := &LogDetail{WorkoutLog: *NewWorkoutLog("x", "y")}
	if !d.IsDerivedEmpty() {
		t.Error("expected empty detail")
	}
	d.Metrics = append(d.Metrics, *NewDailyMetric(d.ID, "SleepQuality", "poor", SentimentNegative))
	if d.IsDerivedEmpty() {
		t.Error("expected non-empty detail")
	}
}
