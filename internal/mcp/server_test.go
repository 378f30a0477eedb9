// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers with a stub model.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/extractor"
	"github.com/harperreed/gains/internal/storage"
	"github.com/harperreed/gains/internal/workoutlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const squatOutput = `{"metrics": [{"metric_name": "Energy", "metric_value": "high", "sentiment": "positive"}],
"exercises": [{"exercise_name": "Squats", "sets": 5, "reps": 5, "weight": 100.0,
  "notes": [{"note_text": "depth was good", "sentiment": "positive"}]}],
"general_notes": []}`

type stubGenerator struct {
	text string
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.text, nil
}

// setupTestServer creates a server over a temp database and a stub model.
func setupTestServer(t *testing.T, modelOutput string) (*Server, *storage.DB, *stubGenerator) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gains-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "gains.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gen := &stubGenerator{text: modelOutput}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := workoutlog.NewService(db, extractor.New(gen, logger), logger)

	server, err := NewServer(db, svc, "test")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db, gen
}

func TestNewServer(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.logs == nil {
		t.Error("Expected non-nil lifecycle service")
	}
}

func TestHandleLogWorkout(t *testing.T) {
	server, db, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logWorkoutInput
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "defaults to today",
			input: logWorkoutInput{SessionName: "Legs", RawText: "Squats 5x5 100kg"},
		},
		{
			name:  "explicit date",
			input: logWorkoutInput{SessionName: "Legs", Date: "2024-03-01", RawText: "Squats 5x5 100kg"},
		},
		{
			name:      "invalid date",
			input:     logWorkoutInput{SessionName: "Legs", Date: "March 1st", RawText: "Squats"},
			wantErr:   true,
			errSubstr: "invalid date",
		},
		{
			name:      "missing text",
			input:     logWorkoutInput{SessionName: "Legs"},
			wantErr:   true,
			errSubstr: "raw_text is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.Empty {
				t.Error("Expected non-empty extraction")
			}
			if output.Exercises != 1 || output.Metrics != 1 || output.Notes != 1 {
				t.Errorf("Unexpected counts: %+v", output)
			}
			if _, err := db.GetLog(ctx, output.ID); err != nil {
				t.Errorf("Expected log to be stored: %v", err)
			}
		})
	}
}

func TestHandleLogWorkoutEmptyExtraction(t *testing.T) {
	server, db, _ := setupTestServer(t, "Sorry, I cannot do that.")
	ctx := context.Background()

	_, output, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		SessionName: "Rest", RawText: "just stretched",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !output.Empty {
		t.Error("Expected empty extraction")
	}
	if !strings.Contains(output.Message, "no structured data") {
		t.Errorf("Expected warning message, got %q", output.Message)
	}
	if _, err := db.GetLog(ctx, output.ID); err != nil {
		t.Errorf("Expected log to be stored even when empty: %v", err)
	}
}

func TestHandleEditWorkout(t *testing.T) {
	server, db, gen := setupTestServer(t, squatOutput)
	ctx := context.Background()

	_, created, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		SessionName: "Legs", Date: "2024-03-01", RawText: "Squats 5x5 100kg",
	})
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}

	gen.text = `{"metrics": [], "exercises": [{"exercise_name": "Lunges", "sets": 3, "reps": 10, "weight": 20}], "general_notes": []}`

	_, output, err := server.handleEditWorkout(ctx, &mcp.CallToolRequest{}, editWorkoutInput{
		ID:      created.ID[:8],
		RawText: "Lunges 3x10 20kg",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if output.Exercises != 1 || output.Metrics != 0 {
		t.Errorf("Unexpected counts after edit: %+v", output)
	}

	detail, err := db.GetLogDetail(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetLogDetail failed: %v", err)
	}
	if detail.SessionName != "Legs" || detail.DateString() != "2024-03-01" {
		t.Errorf("Expected unchanged session and date, got %q %s", detail.SessionName, detail.DateString())
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].ExerciseName != "Lunges" {
		t.Errorf("Expected only Lunges after edit, got %+v", detail.Exercises)
	}
	if len(detail.Notes) != 0 || len(detail.Metrics) != 0 {
		t.Errorf("Expected old notes and metrics to be gone, got %d notes, %d metrics", len(detail.Notes), len(detail.Metrics))
	}
}

func TestHandleEditWorkoutNotFound(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)

	_, _, err := server.handleEditWorkout(context.Background(), &mcp.CallToolRequest{}, editWorkoutInput{ID: "nonexistent"})
	if err == nil || !strings.Contains(err.Error(), "workout not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestHandleReparseWorkout(t *testing.T) {
	server, db, gen := setupTestServer(t, "nothing")
	ctx := context.Background()

	_, created, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		SessionName: "Legs", RawText: "Squats 5x5 100kg",
	})
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}

	gen.text = squatOutput
	_, output, err := server.handleReparseWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: created.ID})
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if output.Empty || output.Exercises != 1 {
		t.Errorf("Expected extraction after reparse, got %+v", output)
	}

	records, err := db.ListExerciseRecords(ctx, mustLogID(t, db, created.ID))
	if err != nil {
		t.Fatalf("ListExerciseRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
}

func TestHandleDeleteWorkout(t *testing.T) {
	server, db, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	_, created, _ := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		SessionName: "Legs", RawText: "Squats",
	})

	_, output, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: created.ID[:8]})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(output.Message, "Deleted workout") {
		t.Errorf("Unexpected message: %q", output.Message)
	}

	if _, err := db.GetLog(ctx, created.ID); err == nil {
		t.Error("Expected log to be deleted")
	}

	if _, _, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: created.ID}); err == nil {
		t.Error("Expected error deleting a missing workout")
	}
}

func TestHandleListWorkouts(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	_, output, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if output.Count != 0 || output.Logs == nil {
		t.Errorf("Expected empty non-nil list, got %+v", output)
	}

	for _, date := range []string{"2024-01-01", "2024-01-03", "2024-01-02"} {
		if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
			SessionName: date, Date: date, RawText: "Squats",
		}); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	_, output, err = server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if output.Count != 2 {
		t.Fatalf("Expected 2 logs, got %d", output.Count)
	}
	if output.Logs[0].Date != "2024-01-03" {
		t.Errorf("Expected newest first, got %s", output.Logs[0].Date)
	}
}

func TestHandleGetWorkout(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	_, created, _ := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		SessionName: "Legs", RawText: "Squats 5x5 100kg",
	})

	_, detail, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: created.ID[:8]})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.Log.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", detail.Log.ID, created.ID)
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].Exercise != "Squats" {
		t.Errorf("Unexpected exercises: %+v", detail.Exercises)
	}
	if len(detail.Notes) != 1 || detail.Notes[0].Category != "exercise_note" {
		t.Errorf("Unexpected notes: %+v", detail.Notes)
	}

	if _, _, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: "nonexistent"}); err == nil {
		t.Error("Expected error for missing workout")
	}
}

func TestHandleExercisesAndHistory(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	for _, date := range []string{"2024-01-02", "2024-01-01"} {
		if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
			SessionName: "Legs", Date: date, RawText: "Squats",
		}); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	_, list, err := server.handleListExercises(ctx, &mcp.CallToolRequest{}, listExercisesInput{})
	if err != nil {
		t.Fatalf("list exercises failed: %v", err)
	}
	if list.Count != 1 || list.Exercises[0].Name != "Squats" {
		t.Errorf("Unexpected exercises: %+v", list)
	}

	_, history, err := server.handleExerciseHistory(ctx, &mcp.CallToolRequest{}, exerciseHistoryInput{Name: "squats"})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history.Entries) != 2 || history.Entries[0].Date != "2024-01-01" {
		t.Errorf("Expected two entries oldest first, got %+v", history.Entries)
	}
	if len(history.Notes) != 2 {
		t.Errorf("Expected 2 notes, got %d", len(history.Notes))
	}

	if _, _, err := server.handleExerciseHistory(ctx, &mcp.CallToolRequest{}, exerciseHistoryInput{Name: "Curls"}); err == nil {
		t.Error("Expected error for unknown exercise")
	}
}

func TestHandleListMetrics(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	for _, date := range []string{"2024-01-02", "2024-01-01"} {
		if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
			SessionName: "Legs", Date: date, RawText: "Squats",
		}); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	_, output, err := server.handleListMetrics(ctx, &mcp.CallToolRequest{}, listMetricsInput{MetricName: "energy"})
	if err != nil {
		t.Fatalf("list metrics failed: %v", err)
	}
	if output.Count != 2 {
		t.Fatalf("Expected 2 metrics, got %d", output.Count)
	}
	if output.Metrics[0].Date != "2024-01-01" {
		t.Errorf("Expected chronological order, got %s first", output.Metrics[0].Date)
	}

	_, output, err = server.handleListMetrics(ctx, &mcp.CallToolRequest{}, listMetricsInput{MetricName: "Mood"})
	if err != nil {
		t.Fatalf("list metrics failed: %v", err)
	}
	if output.Count != 0 || output.Metrics == nil {
		t.Errorf("Expected empty non-nil list, got %+v", output)
	}
}

func TestHandleRecentLogsResource(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)
	ctx := context.Background()

	if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		SessionName: "Legs", RawText: "Squats",
	}); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	result, err := server.handleRecentLogsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource failed: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != recentLogsURI {
		t.Fatalf("Unexpected contents: %+v", result.Contents)
	}

	var body struct {
		Count int             `json:"count"`
		Logs  []logDetailView `json:"logs"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Count != 1 || len(body.Logs[0].Exercises) != 1 {
		t.Errorf("Unexpected resource body: %+v", body)
	}
}

func TestHandleRecentMetricsResourceEmpty(t *testing.T) {
	server, _, _ := setupTestServer(t, squatOutput)

	result, err := server.handleRecentMetricsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"count": 0`) {
		t.Errorf("Expected zero count, got %s", result.Contents[0].Text)
	}
	if !strings.Contains(result.Contents[0].Text, `"metrics": []`) {
		t.Errorf("Expected empty metrics array, got %s", result.Contents[0].Text)
	}
}

func mustLogID(t *testing.T, db *storage.DB, id string) uuid.UUID {
	t.Helper()
	w, err := db.GetLog(context.Background(), id)
	if err != nil {
		t.Fatalf("GetLog failed: %v", err)
	}
	return w.ID
}
