// ABOUTME: Export and import functionality for the workout journal.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the version written into every export document.
const ExportVersion = "1.0"

// ExportData represents the full export format for the journal.
type ExportData struct {
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Tool       string              `json:"tool" yaml:"tool"`
	Exercises  []*models.Exercise  `json:"exercises" yaml:"exercises"`
	Logs       []*models.LogDetail `json:"logs" yaml:"logs"`
}

// GetAllData retrieves all logs with their derived rows, oldest first.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	exercises, err := d.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := d.ListLogs(ctx, 0)
	if err != nil {
		return nil, err
	}

	details := make([]*models.LogDetail, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		detail, err := d.GetLogDetail(ctx, logs[i].ID.String())
		if err != nil {
			return nil, fmt.Errorf("load log %s: %w", logs[i].ID, err)
		}
		details = append(details, detail)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "gains",
		Exercises:  exercises,
		Logs:       details,
	}, nil
}

// ImportData imports an export document in one transaction. Logs whose ID
// already exists are skipped. Exercises are matched by name, so imported
// records attach to existing exercises rather than duplicating them.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	namesByID := make(map[uuid.UUID]string, len(data.Exercises))
	for _, ex := range data.Exercises {
		namesByID[ex.ID] = ex.Name
	}

	return d.WithTx(ctx, func(tx *Tx) error {
		resolved := make(map[string]uuid.UUID)
		resolve := func(id uuid.UUID, name string) (uuid.UUID, error) {
			if name == "" {
				name = namesByID[id]
			}
			key := strings.ToLower(models.NormalizeExerciseName(name))
			if exID, ok := resolved[key]; ok {
				return exID, nil
			}
			ex, err := tx.GetOrCreateExercise(ctx, name)
			if err != nil {
				return uuid.Nil, err
			}
			resolved[key] = ex.ID
			return ex.ID, nil
		}

		for _, detail := range data.Logs {
			exists, err := logExists(ctx, tx.tx, detail.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			w := detail.WorkoutLog
			if w.CreatedAt.IsZero() {
				w.CreatedAt = time.Now()
			}
			if w.UpdatedAt.IsZero() {
				w.UpdatedAt = w.CreatedAt
			}
			if err := tx.InsertLog(ctx, &w); err != nil {
				return fmt.Errorf("import log: %w", err)
			}

			for _, m := range detail.Metrics {
				m := models.NewDailyMetric(w.ID, m.MetricName, m.MetricValue, m.Sentiment)
				if err := tx.InsertDailyMetric(ctx, m); err != nil {
					return fmt.Errorf("import metric: %w", err)
				}
			}

			for _, r := range detail.Exercises {
				exID, err := resolve(r.ExerciseID, r.ExerciseName)
				if err != nil {
					return fmt.Errorf("import exercise: %w", err)
				}
				rec := models.NewExerciseRecord(w.ID, exID, r.Sets, r.Reps, r.Weight)
				if err := tx.InsertExerciseRecord(ctx, rec); err != nil {
					return fmt.Errorf("import exercise record: %w", err)
				}
			}

			for _, n := range detail.Notes {
				var note *models.Note
				if n.ExerciseID != nil {
					exID, err := resolve(*n.ExerciseID, n.ExerciseName)
					if err != nil {
						return fmt.Errorf("import exercise: %w", err)
					}
					note = models.NewExerciseNote(w.ID, exID, n.Text, n.Sentiment)
				} else {
					note = models.NewGeneralNote(w.ID, n.Text, n.Category, n.Sentiment)
				}
				if err := tx.InsertNote(ctx, note); err != nil {
					return fmt.Errorf("import note: %w", err)
				}
			}
		}
		return nil
	})
}

func logExists(ctx context.Context, q queryer, id uuid.UUID) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM workout_logs WHERE id = ?`, id.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check log: %w", err)
	}
	return true, nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	// Flatten to a human-friendly shape with short IDs and plain dates
	yamlData := struct {
		Version    string    `yaml:"version"`
		ExportedAt string    `yaml:"exported_at"`
		Tool       string    `yaml:"tool"`
		Logs       []yamlLog `yaml:"logs"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Logs:       make([]yamlLog, 0, len(data.Logs)),
	}

	for _, l := range data.Logs {
		yl := yamlLog{
			ID:      l.ID.String()[:8],
			Session: l.SessionName,
			Date:    l.DateString(),
			Raw:     l.RawText,
		}
		for _, m := range l.Metrics {
			yl.Metrics = append(yl.Metrics, yamlMetric{
				Name:      m.MetricName,
				Value:     m.MetricValue,
				Sentiment: string(m.Sentiment),
			})
		}
		for _, r := range l.Exercises {
			yl.Exercises = append(yl.Exercises, yamlExercise{
				Name:   r.ExerciseName,
				Sets:   r.Sets,
				Reps:   r.Reps,
				Weight: r.Weight,
			})
		}
		for _, n := range l.Notes {
			yl.Notes = append(yl.Notes, yamlNote{
				Exercise:  n.ExerciseName,
				Text:      n.Text,
				Category:  n.Category,
				Sentiment: string(n.Sentiment),
			})
		}
		yamlData.Logs = append(yamlData.Logs, yl)
	}

	return yaml.Marshal(yamlData)
}

type yamlLog struct {
	ID        string         `yaml:"id"`
	Session   string         `yaml:"session"`
	Date      string         `yaml:"date"`
	Raw       string         `yaml:"raw"`
	Metrics   []yamlMetric   `yaml:"metrics,omitempty"`
	Exercises []yamlExercise `yaml:"exercises,omitempty"`
	Notes     []yamlNote     `yaml:"notes,omitempty"`
}

type yamlMetric struct {
	Name      string `yaml:"name"`
	Value     string `yaml:"value"`
	Sentiment string `yaml:"sentiment"`
}

type yamlExercise struct {
	Name   string   `yaml:"name"`
	Sets   *int     `yaml:"sets"`
	Reps   *int     `yaml:"reps"`
	Weight *float64 `yaml:"weight"`
}

type yamlNote struct {
	Exercise  string `yaml:"exercise,omitempty"`
	Text      string `yaml:"text"`
	Category  string `yaml:"category"`
	Sentiment string `yaml:"sentiment"`
}

// ExportMarkdown exports logs as Markdown, one section per session.
func (d *DB) ExportMarkdown(ctx context.Context, since *time.Time) (string, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Workout Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, l := range data.Logs {
		if since != nil && l.Date.Before(models.TruncateDate(*since)) {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s - %s\n\n", l.DateString(), l.SessionName))

		if len(l.Exercises) > 0 {
			sb.WriteString("| Exercise | Sets | Reps | Weight |\n")
			sb.WriteString("|----------|------|------|--------|\n")
			for _, r := range l.Exercises {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
					r.ExerciseName, FormatInt(r.Sets), FormatInt(r.Reps), FormatWeight(r.Weight)))
			}
			sb.WriteString("\n")
		}

		if len(l.Metrics) > 0 {
			sb.WriteString("**Metrics**\n\n")
			for _, m := range l.Metrics {
				sb.WriteString(fmt.Sprintf("- %s: %s (%s)\n", m.MetricName, m.MetricValue, m.Sentiment))
			}
			sb.WriteString("\n")
		}

		if len(l.Notes) > 0 {
			sb.WriteString("**Notes**\n\n")
			for _, n := range l.Notes {
				if n.ExerciseName != "" {
					sb.WriteString(fmt.Sprintf("- %s: %s (%s)\n", n.ExerciseName, n.Text, n.Sentiment))
				} else {
					sb.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", n.Category, n.Text, n.Sentiment))
				}
			}
			sb.WriteString("\n")
		}

		if l.IsDerivedEmpty() {
			sb.WriteString("_No structured data extracted._\n\n")
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &exportData)
}

// FormatInt renders an optional count, "-" when absent.
func FormatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// FormatWeight renders an optional weight with one decimal, "-" when absent.
func FormatWeight(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
