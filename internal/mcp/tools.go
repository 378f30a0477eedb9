// ABOUTME: MCP tool implementations for the workout journal.
// ABOUTME: Log writes go through the lifecycle service; browsing reads storage directly.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/gains/internal/models"
	"github.com/harperreed/gains/internal/workoutlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Save a free-text workout note and extract exercises, metrics and notes from it",
	}, s.handleLogWorkout)

	// edit_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_workout",
		Description: "Edit a workout log and re-extract its structured data from the new text",
	}, s.handleEditWorkout)

	// reparse_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reparse_workout",
		Description: "Re-run extraction on a workout log's current text",
	}, s.handleReparseWorkout)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout log and everything extracted from it",
	}, s.handleDeleteWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workout logs, newest first",
	}, s.handleListWorkouts)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout log with its exercises, notes and metrics",
	}, s.handleGetWorkout)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List every exercise seen so far",
	}, s.handleListExercises)

	// exercise_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_history",
		Description: "Show every recorded set and note for one exercise, oldest first",
	}, s.handleExerciseHistory)

	// list_metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_metrics",
		Description: "Chronological feed of daily metrics, optionally filtered by name",
	}, s.handleListMetrics)
}

// Tool input/output types

type logWorkoutInput struct {
	SessionName string `json:"session_name" jsonschema:"Name of the training session"`
	Date        string `json:"date,omitempty" jsonschema:"Session date (YYYY-MM-DD), defaults to today"`
	RawText     string `json:"raw_text" jsonschema:"Free-text workout notes"`
}

type resultOutput struct {
	ID        string `json:"id"`
	Empty     bool   `json:"empty"`
	Exercises int    `json:"exercises"`
	Metrics   int    `json:"metrics"`
	Notes     int    `json:"notes"`
	Message   string `json:"message"`
}

type editWorkoutInput struct {
	ID          string `json:"id" jsonschema:"Workout log ID or prefix"`
	SessionName string `json:"session_name,omitempty" jsonschema:"New session name, unchanged if empty"`
	Date        string `json:"date,omitempty" jsonschema:"New date (YYYY-MM-DD), unchanged if empty"`
	RawText     string `json:"raw_text,omitempty" jsonschema:"New workout text, unchanged if empty"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Workout log ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listWorkoutsOutput struct {
	Count int       `json:"count"`
	Logs  []logView `json:"logs"`
}

type listExercisesInput struct{}

type listExercisesOutput struct {
	Count     int            `json:"count"`
	Exercises []exerciseView `json:"exercises"`
}

type exerciseHistoryInput struct {
	Name string `json:"name" jsonschema:"Exercise name (case-insensitive)"`
}

type exerciseHistoryOutput struct {
	Exercise exerciseView       `json:"exercise"`
	Entries  []historyEntryView `json:"entries"`
	Notes    []historyNoteView  `json:"notes"`
}

type listMetricsInput struct {
	MetricName string `json:"metric_name,omitempty" jsonschema:"Only this metric (case-insensitive)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listMetricsOutput struct {
	Count   int          `json:"count"`
	Metrics []metricView `json:"metrics"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, resultOutput, error) {
	if input.RawText == "" {
		return nil, resultOutput{}, fmt.Errorf("raw_text is required")
	}

	date, err := parseDateOr(input.Date, time.Now())
	if err != nil {
		return nil, resultOutput{}, err
	}

	res, err := s.logs.Create(ctx, input.SessionName, date, input.RawText)
	if err != nil {
		return nil, resultOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	out := toResultOutput(res)
	if res.Empty {
		out.Message = fmt.Sprintf("Saved log %s, but no structured data could be extracted. Try reparse_workout later.", out.ID[:8])
	} else {
		out.Message = fmt.Sprintf("Saved log %s: %d exercises, %d metrics, %d notes", out.ID[:8], out.Exercises, out.Metrics, out.Notes)
	}
	return nil, out, nil
}

func (s *Server) handleEditWorkout(ctx context.Context, req *mcp.CallToolRequest, input editWorkoutInput) (*mcp.CallToolResult, resultOutput, error) {
	current, err := s.repo.GetLog(ctx, input.ID)
	if err != nil {
		return nil, resultOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	}

	session := current.SessionName
	if input.SessionName != "" {
		session = input.SessionName
	}
	rawText := current.RawText
	if input.RawText != "" {
		rawText = input.RawText
	}
	date, err := parseDateOr(input.Date, current.Date)
	if err != nil {
		return nil, resultOutput{}, err
	}

	res, err := s.logs.Edit(ctx, current.ID.String(), session, date, rawText)
	if err != nil {
		return nil, resultOutput{}, fmt.Errorf("failed to edit workout: %w", err)
	}

	out := toResultOutput(res)
	out.Message = fmt.Sprintf("Updated log %s: %d exercises, %d metrics, %d notes", out.ID[:8], out.Exercises, out.Metrics, out.Notes)
	return nil, out, nil
}

func (s *Server) handleReparseWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, resultOutput, error) {
	res, err := s.logs.Reparse(ctx, input.ID)
	if err != nil {
		return nil, resultOutput{}, fmt.Errorf("failed to reparse workout: %w", err)
	}

	out := toResultOutput(res)
	out.Message = fmt.Sprintf("Reparsed log %s: %d exercises, %d metrics, %d notes", out.ID[:8], out.Exercises, out.Metrics, out.Notes)
	return nil, out, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.logs.Delete(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %s", input.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	logs, err := s.repo.ListLogs(ctx, input.Limit)
	if err != nil {
		return nil, listWorkoutsOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}

	out := listWorkoutsOutput{Logs: make([]logView, 0, len(logs))}
	for _, w := range logs {
		out.Logs = append(out.Logs, toLogView(w))
	}
	out.Count = len(out.Logs)
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, logDetailView, error) {
	detail, err := s.repo.GetLogDetail(ctx, input.ID)
	if err != nil {
		return nil, logDetailView{}, fmt.Errorf("workout not found: %s", input.ID)
	}
	return nil, toLogDetailView(detail), nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, listExercisesOutput, error) {
	exercises, err := s.repo.ListExercises(ctx)
	if err != nil {
		return nil, listExercisesOutput{}, fmt.Errorf("failed to list exercises: %w", err)
	}

	out := listExercisesOutput{Exercises: make([]exerciseView, 0, len(exercises))}
	for _, ex := range exercises {
		out.Exercises = append(out.Exercises, exerciseView{ID: ex.ID.String(), Name: ex.Name})
	}
	out.Count = len(out.Exercises)
	return nil, out, nil
}

func (s *Server) handleExerciseHistory(ctx context.Context, req *mcp.CallToolRequest, input exerciseHistoryInput) (*mcp.CallToolResult, exerciseHistoryOutput, error) {
	ex, err := s.repo.GetExercise(ctx, input.Name)
	if err != nil {
		return nil, exerciseHistoryOutput{}, fmt.Errorf("exercise not found: %s", input.Name)
	}

	h, err := s.repo.ExerciseHistory(ctx, ex.ID)
	if err != nil {
		return nil, exerciseHistoryOutput{}, fmt.Errorf("failed to load history: %w", err)
	}

	out := exerciseHistoryOutput{
		Exercise: exerciseView{ID: h.Exercise.ID.String(), Name: h.Exercise.Name},
		Entries:  make([]historyEntryView, 0, len(h.Entries)),
		Notes:    make([]historyNoteView, 0, len(h.Notes)),
	}
	for _, e := range h.Entries {
		out.Entries = append(out.Entries, historyEntryView{
			Date:        e.Date.Format(models.DateLayout),
			LogID:       e.WorkoutLogID.String(),
			SessionName: e.SessionName,
			Sets:        e.Sets,
			Reps:        e.Reps,
			Weight:      e.Weight,
		})
	}
	for _, n := range h.Notes {
		out.Notes = append(out.Notes, historyNoteView{
			Date:      n.Date.Format(models.DateLayout),
			Text:      n.Text,
			Sentiment: string(n.Sentiment),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListMetrics(ctx context.Context, req *mcp.CallToolRequest, input listMetricsInput) (*mcp.CallToolResult, listMetricsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	var name *string
	if input.MetricName != "" {
		name = &input.MetricName
	}

	feed, err := s.repo.MetricsFeed(ctx, name, input.Limit)
	if err != nil {
		return nil, listMetricsOutput{}, fmt.Errorf("failed to list metrics: %w", err)
	}

	metrics := toMetricViews(feed)
	return nil, listMetricsOutput{Count: len(metrics), Metrics: metrics}, nil
}

func toResultOutput(res *workoutlog.Result) resultOutput {
	notes := len(res.Record.GeneralNotes)
	for _, e := range res.Record.Exercises {
		notes += len(e.Notes)
	}
	return resultOutput{
		ID:        res.LogID.String(),
		Empty:     res.Empty,
		Exercises: len(res.Record.Exercises),
		Metrics:   len(res.Record.Metrics),
		Notes:     notes,
	}
}

// parseDateOr parses a YYYY-MM-DD date, returning fallback when s is empty.
func parseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
