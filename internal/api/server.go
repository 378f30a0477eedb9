// ABOUTME: HTTP API for the workout journal built on chi.
// ABOUTME: Exposes log lifecycle, exercise history and the metrics feed as JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harperreed/gains/internal/models"
	"github.com/harperreed/gains/internal/storage"
	"github.com/harperreed/gains/internal/workoutlog"
)

const (
	defaultListLimit    = 20
	maxBodyBytes        = 1 << 20
	shutdownGracePeriod = 5 * time.Second
)

type Server struct {
	router *chi.Mux
	port   int
	repo   storage.Repository
	logs   *workoutlog.Service
	logger *slog.Logger
}

func NewServer(repo storage.Repository, svc *workoutlog.Service, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	s := &Server{
		router: router,
		port:   port,
		repo:   repo,
		logs:   svc,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/logs", func(r chi.Router) {
			r.Get("/", s.listLogs)
			r.Post("/", s.createLog)
			r.Get("/{id}", s.getLog)
			r.Put("/{id}", s.editLog)
			r.Delete("/{id}", s.deleteLog)
			r.Post("/{id}/reparse", s.reparseLog)
		})
		r.Get("/exercises", s.listExercises)
		r.Get("/exercises/{name}/history", s.exerciseHistory)
		r.Get("/metrics", s.listMetrics)
	})

	return s
}

// Handler returns the routed handler, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		s.logger.Info("API server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type logRequest struct {
	SessionName string `json:"session_name"`
	Date        string `json:"date"`
	RawText     string `json:"raw_text"`
}

type resultResponse struct {
	ID        string `json:"id"`
	Empty     bool   `json:"empty"`
	Exercises int    `json:"exercises"`
	Metrics   int    `json:"metrics"`
	Notes     int    `json:"notes"`
}

func toResultResponse(res *workoutlog.Result) resultResponse {
	notes := len(res.Record.GeneralNotes)
	for _, e := range res.Record.Exercises {
		notes += len(e.Notes)
	}
	return resultResponse{
		ID:        res.LogID.String(),
		Empty:     res.Empty,
		Exercises: len(res.Record.Exercises),
		Metrics:   len(res.Record.Metrics),
		Notes:     notes,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logs, err := s.repo.ListLogs(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if logs == nil {
		logs = []*models.WorkoutLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(logs), "logs": logs})
}

func (s *Server) createLog(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.RawText == "" {
		writeError(w, http.StatusBadRequest, "raw_text is required")
		return
	}

	date, err := parseDateOr(req.Date, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.logs.Create(r.Context(), req.SessionName, date, req.RawText)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResultResponse(res))
}

func (s *Server) getLog(w http.ResponseWriter, r *http.Request) {
	detail, err := s.repo.GetLogDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// editLog keeps any field the request leaves empty.
func (s *Server) editLog(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := s.repo.GetLog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	session := current.SessionName
	if req.SessionName != "" {
		session = req.SessionName
	}
	rawText := current.RawText
	if req.RawText != "" {
		rawText = req.RawText
	}
	date, err := parseDateOr(req.Date, current.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.logs.Edit(r.Context(), current.ID.String(), session, date, rawText)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultResponse(res))
}

func (s *Server) deleteLog(w http.ResponseWriter, r *http.Request) {
	if err := s.logs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reparseLog(w http.ResponseWriter, r *http.Request) {
	res, err := s.logs.Reparse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultResponse(res))
}

func (s *Server) listExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.repo.ListExercises(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(exercises), "exercises": exercises})
}

func (s *Server) exerciseHistory(w http.ResponseWriter, r *http.Request) {
	// The parameter is only still escaped when chi routed on RawPath.
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid exercise name")
			return
		}
		name = unescaped
	}

	ex, err := s.repo.GetExercise(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return
	}
	history, err := s.repo.ExerciseHistory(r.Context(), ex.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if history.Entries == nil {
		history.Entries = []models.HistoryEntry{}
	}
	if history.Notes == nil {
		history.Notes = []models.DatedNote{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) listMetrics(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var name *string
	if v := r.URL.Query().Get("name"); v != "" {
		name = &v
	}

	feed, err := s.repo.MetricsFeed(r.Context(), name, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if feed == nil {
		feed = []models.DatedMetric{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(feed), "metrics": feed})
}

// fail maps storage errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrAmbiguousPrefix):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func queryLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit %q", v)
	}
	return n, nil
}

func parseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
