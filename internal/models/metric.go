// ABOUTME: DailyMetric and Note models plus the open Sentiment vocabulary.
// ABOUTME: Metrics are whole-session observations; notes may link to an exercise.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment is a free-text valence label. The set is open: any label the
// model produces is stored as-is. The constants below are only the labels
// the extraction prompt demonstrates.
type Sentiment string

const (
	SentimentPositive  Sentiment = "positive"
	SentimentNegative  Sentiment = "negative"
	SentimentNeutral   Sentiment = "neutral"
	SentimentImproving Sentiment = "improving"
	SentimentWorsening Sentiment = "worsening"
	SentimentPresent   Sentiment = "present"
)

// KnownSentiments lists the demonstrated labels, for display hints only.
var KnownSentiments = []Sentiment{
	SentimentPositive, SentimentNegative, SentimentNeutral,
	SentimentImproving, SentimentWorsening, SentimentPresent,
}

// IsKnownSentiment reports whether s is one of the demonstrated labels.
// Unknown labels are still valid.
func IsKnownSentiment(s string) bool {
	for _, k := range KnownSentiments {
		if string(k) == s {
			return true
		}
	}
	return false
}

// CategoryExerciseNote marks a note attached to a specific exercise.
const CategoryExerciseNote = "exercise_note"

// DailyMetric is a whole-session observation such as sleep, pain or mood.
type DailyMetric struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	WorkoutLogID uuid.UUID `json:"workout_log_id" yaml:"workout_log_id"`
	MetricName   string    `json:"metric_name" yaml:"metric_name"`
	MetricValue  string    `json:"metric_value" yaml:"metric_value"`
	Sentiment    Sentiment `json:"sentiment" yaml:"sentiment"`
}

// NewDailyMetric creates a new DailyMetric with generated UUID.
func NewDailyMetric(logID uuid.UUID, name, value string, sentiment Sentiment) *DailyMetric {
	return &DailyMetric{
		ID:           uuid.New(),
		WorkoutLogID: logID,
		MetricName:   name,
		MetricValue:  value,
		Sentiment:    sentiment,
	}
}

// DatedMetric is a DailyMetric joined with its log date for the metrics feed.
type DatedMetric struct {
	DailyMetric
	Date        time.Time `json:"date"`
	SessionName string    `json:"session_name"`
}

// Note is a free-text remark. ExerciseID is nil for general notes.
type Note struct {
	ID           uuid.UUID  `json:"id" yaml:"id"`
	WorkoutLogID uuid.UUID  `json:"workout_log_id" yaml:"workout_log_id"`
	ExerciseID   *uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName string     `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	Text         string     `json:"note_text" yaml:"note_text"`
	Category     string     `json:"category" yaml:"category"`
	Sentiment    Sentiment  `json:"sentiment" yaml:"sentiment"`
}

// NewExerciseNote creates a note linked to an exercise.
func NewExerciseNote(logID, exerciseID uuid.UUID, text string, sentiment Sentiment) *Note {
	return &Note{
		ID:           uuid.New(),
		WorkoutLogID: logID,
		ExerciseID:   &exerciseID,
		Text:         text,
		Category:     CategoryExerciseNote,
		Sentiment:    sentiment,
	}
}

// NewGeneralNote creates a note with no exercise link.
func NewGeneralNote(logID uuid.UUID, text, category string, sentiment Sentiment) *Note {
	return &Note{
		ID:           uuid.New(),
		WorkoutLogID: logID,
		Text:         text,
		Category:     category,
		Sentiment:    sentiment,
	}
}

// DatedNote is a Note joined with its log date for exercise history.
type DatedNote struct {
	Date      time.Time `json:"date"`
	Text      string    `json:"note_text"`
	Sentiment Sentiment `json:"sentiment"`
}
