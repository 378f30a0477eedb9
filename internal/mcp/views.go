// ABOUTME: Flat output shapes for MCP tool results and resources.
// ABOUTME: Uses plain strings and numbers so inferred output schemas match the JSON.
package mcp

import (
	"github.com/harperreed/gains/internal/models"
)

type logView struct {
	ID          string `json:"id"`
	ShortID     string `json:"short_id"`
	SessionName string `json:"session_name"`
	Date        string `json:"date"`
	RawText     string `json:"raw_text"`
}

type exerciseRecordView struct {
	Exercise string   `json:"exercise"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
}

type noteView struct {
	Exercise  string `json:"exercise,omitempty"`
	Text      string `json:"note_text"`
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
}

type metricView struct {
	Date        string `json:"date,omitempty"`
	SessionName string `json:"session_name,omitempty"`
	Name        string `json:"metric_name"`
	Value       string `json:"metric_value"`
	Sentiment   string `json:"sentiment"`
}

type logDetailView struct {
	Log       logView              `json:"log"`
	Exercises []exerciseRecordView `json:"exercises"`
	Notes     []noteView           `json:"notes"`
	Metrics   []metricView         `json:"metrics"`
}

type exerciseView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type historyEntryView struct {
	Date        string   `json:"date"`
	LogID       string   `json:"log_id"`
	SessionName string   `json:"session_name"`
	Sets        *int     `json:"sets"`
	Reps        *int     `json:"reps"`
	Weight      *float64 `json:"weight"`
}

type historyNoteView struct {
	Date      string `json:"date"`
	Text      string `json:"note_text"`
	Sentiment string `json:"sentiment"`
}

func toLogView(w *models.WorkoutLog) logView {
	return logView{
		ID:          w.ID.String(),
		ShortID:     w.ID.String()[:8],
		SessionName: w.SessionName,
		Date:        w.DateString(),
		RawText:     w.RawText,
	}
}

func toLogDetailView(d *models.LogDetail) logDetailView {
	v := logDetailView{
		Log:       toLogView(&d.WorkoutLog),
		Exercises: make([]exerciseRecordView, 0, len(d.Exercises)),
		Notes:     make([]noteView, 0, len(d.Notes)),
		Metrics:   make([]metricView, 0, len(d.Metrics)),
	}
	for _, r := range d.Exercises {
		v.Exercises = append(v.Exercises, exerciseRecordView{
			Exercise: r.ExerciseName,
			Sets:     r.Sets,
			Reps:     r.Reps,
			Weight:   r.Weight,
		})
	}
	for _, n := range d.Notes {
		v.Notes = append(v.Notes, noteView{
			Exercise:  n.ExerciseName,
			Text:      n.Text,
			Category:  n.Category,
			Sentiment: string(n.Sentiment),
		})
	}
	for _, m := range d.Metrics {
		v.Metrics = append(v.Metrics, metricView{
			Name:      m.MetricName,
			Value:     m.MetricValue,
			Sentiment: string(m.Sentiment),
		})
	}
	return v
}

func toMetricViews(feed []models.DatedMetric) []metricView {
	out := make([]metricView, 0, len(feed))
	for _, m := range feed {
		out = append(out, metricView{
			Date:        m.Date.Format(models.DateLayout),
			SessionName: m.SessionName,
			Name:        m.MetricName,
			Value:       m.MetricValue,
			Sentiment:   string(m.Sentiment),
		})
	}
	return out
}
