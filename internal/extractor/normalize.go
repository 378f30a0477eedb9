// ABOUTME: Maps salvaged model output into the canonical extraction record.
// ABOUTME: Never fails: missing or mistyped fields fall back to defaults.
package extractor

import "math"

// Record is the canonical extraction result for one raw text.
type Record struct {
	Metrics      []Metric      `json:"metrics"`
	Exercises    []Exercise    `json:"exercises"`
	GeneralNotes []GeneralNote `json:"general_notes"`
}

// IsEmpty reports whether all three lists are empty.
func (r Record) IsEmpty() bool {
	return len(r.Metrics) == 0 && len(r.Exercises) == 0 && len(r.GeneralNotes) == 0
}

// Metric is a whole-session observation.
type Metric struct {
	Name      string `json:"metric_name"`
	Value     string `json:"metric_value"`
	Sentiment string `json:"sentiment"`
}

// Exercise is one exercise mention. A nil count or weight means the model
// explicitly gave null (e.g. AMRAP reps).
type Exercise struct {
	Name   string         `json:"exercise_name"`
	Sets   *int           `json:"sets"`
	Reps   *int           `json:"reps"`
	Weight *float64       `json:"weight"`
	Notes  []ExerciseNote `json:"notes"`
}

// ExerciseNote is a remark attached to one exercise.
type ExerciseNote struct {
	Text      string `json:"note_text"`
	Sentiment string `json:"sentiment"`
}

// GeneralNote is a remark not tied to any exercise.
type GeneralNote struct {
	Text      string `json:"note_text"`
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
}

// Normalize converts decoded JSON into a Record.
func Normalize(raw map[string]any) Record {
	rec := Record{
		Metrics:      []Metric{},
		Exercises:    []Exercise{},
		GeneralNotes: []GeneralNote{},
	}

	for _, m := range objects(raw, "metrics") {
		rec.Metrics = append(rec.Metrics, Metric{
			Name:      str(m, "metric_name"),
			Value:     str(m, "metric_value"),
			Sentiment: str(m, "sentiment"),
		})
	}

	for _, e := range objects(raw, "exercises") {
		ex := Exercise{
			Name:   str(e, "exercise_name"),
			Sets:   count(e, "sets"),
			Reps:   count(e, "reps"),
			Weight: weight(e, "weight"),
			Notes:  []ExerciseNote{},
		}
		for _, n := range objects(e, "notes") {
			ex.Notes = append(ex.Notes, ExerciseNote{
				Text:      str(n, "note_text"),
				Sentiment: str(n, "sentiment"),
			})
		}
		rec.Exercises = append(rec.Exercises, ex)
	}

	for _, n := range objects(raw, "general_notes") {
		rec.GeneralNotes = append(rec.GeneralNotes, GeneralNote{
			Text:      str(n, "note_text"),
			Category:  str(n, "category"),
			Sentiment: str(n, "sentiment"),
		})
	}

	return rec
}

// objects returns the object items of the list under key, skipping
// anything that is not an object.
func objects(m map[string]any, key string) []map[string]any {
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// count reads an integer field: missing or mistyped is 0, null is nil.
// Fractional, negative or out-of-range numbers count as mistyped.
func count(m map[string]any, key string) *int {
	v, present := m[key]
	if present && v == nil {
		return nil
	}
	n := 0
	if f, ok := v.(float64); ok && f >= 0 && f <= math.MaxInt32 && f == math.Trunc(f) {
		n = int(f)
	}
	return &n
}

// weight reads a float field: missing or mistyped is 0.0, null is nil.
func weight(m map[string]any, key string) *float64 {
	v, present := m[key]
	if present && v == nil {
		return nil
	}
	w := 0.0
	if f, ok := v.(float64); ok {
		w = f
	}
	return &w
}
