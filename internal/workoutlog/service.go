// ABOUTME: Workout log lifecycle: create, edit, delete and re-derive structured data.
// ABOUTME: Keeps a log's derived rows equal to the latest extraction over its raw text.
package workoutlog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/extractor"
	"github.com/harperreed/gains/internal/models"
	"github.com/harperreed/gains/internal/storage"
)

// Extractor turns raw text into a record. *extractor.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, rawText string) extractor.Record
}

// Result describes the outcome of a create or edit.
type Result struct {
	LogID  uuid.UUID        `json:"log_id"`
	Empty  bool             `json:"empty"`
	Record extractor.Record `json:"record"`
}

// Service coordinates extraction and persistence.
type Service struct {
	repo      storage.Repository
	extractor Extractor
	logger    *slog.Logger
}

func NewService(repo storage.Repository, ext Extractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, extractor: ext, logger: logger}
}

// Create stores a new log and its derived rows. The log row is committed
// before extraction so it survives an empty result; in that case Empty is
// set and nothing else is written.
func (s *Service) Create(ctx context.Context, sessionName string, date time.Time, rawText string) (*Result, error) {
	w := models.NewWorkoutLog(sessionName, rawText).WithDate(date)
	if err := s.repo.CreateLog(ctx, w); err != nil {
		return nil, err
	}

	rec := s.extractor.Extract(ctx, rawText)
	res := &Result{LogID: w.ID, Record: rec}

	if rec.IsEmpty() {
		s.logger.Warn("no structured data extracted", "log_id", w.ID)
		res.Empty = true
		return res, nil
	}

	err := s.repo.WithTx(ctx, func(tx *storage.Tx) error {
		return insertRecord(ctx, tx, w.ID, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("store extraction: %w", err)
	}

	s.logger.Info("log created", "log_id", w.ID, "exercises", len(rec.Exercises))
	return res, nil
}

// Edit replaces a log's fields and fully re-derives its rows from the new
// text, even when the new extraction is empty.
func (s *Service) Edit(ctx context.Context, idOrPrefix, sessionName string, date time.Time, rawText string) (*Result, error) {
	w, err := s.repo.GetLog(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	rec := s.extractor.Extract(ctx, rawText)

	w.SessionName = sessionName
	w.RawText = rawText
	w.WithDate(date)
	w.UpdatedAt = time.Now()

	err = s.repo.WithTx(ctx, func(tx *storage.Tx) error {
		if err := tx.DeleteChildren(ctx, w.ID); err != nil {
			return err
		}
		if err := tx.UpdateLog(ctx, w); err != nil {
			return err
		}
		return insertRecord(ctx, tx, w.ID, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("edit log: %w", err)
	}

	s.logger.Info("log edited", "log_id", w.ID, "empty", rec.IsEmpty())
	return &Result{LogID: w.ID, Empty: rec.IsEmpty(), Record: rec}, nil
}

// Reparse re-derives a log from its current text and fields.
func (s *Service) Reparse(ctx context.Context, idOrPrefix string) (*Result, error) {
	w, err := s.repo.GetLog(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.Edit(ctx, w.ID.String(), w.SessionName, w.Date, w.RawText)
}

// Delete removes a log and every row derived from it.
func (s *Service) Delete(ctx context.Context, idOrPrefix string) error {
	w, err := s.repo.GetLog(ctx, idOrPrefix)
	if err != nil {
		return err
	}

	err = s.repo.WithTx(ctx, func(tx *storage.Tx) error {
		if err := tx.DeleteChildren(ctx, w.ID); err != nil {
			return err
		}
		return tx.DeleteLog(ctx, w.ID)
	})
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	s.logger.Info("log deleted", "log_id", w.ID)
	return nil
}

// Preview runs extraction without writing anything.
func (s *Service) Preview(ctx context.Context, rawText string) extractor.Record {
	return s.extractor.Extract(ctx, rawText)
}

// insertRecord writes metrics, exercise records with their notes, and
// general notes for one log.
func insertRecord(ctx context.Context, tx *storage.Tx, logID uuid.UUID, rec extractor.Record) error {
	for _, m := range rec.Metrics {
		dm := models.NewDailyMetric(logID, m.Name, m.Value, models.Sentiment(m.Sentiment))
		if err := tx.InsertDailyMetric(ctx, dm); err != nil {
			return err
		}
	}

	for _, e := range rec.Exercises {
		ex, err := tx.GetOrCreateExercise(ctx, e.Name)
		if err != nil {
			return err
		}
		if err := tx.InsertExerciseRecord(ctx, models.NewExerciseRecord(logID, ex.ID, e.Sets, e.Reps, e.Weight)); err != nil {
			return err
		}
		for _, n := range e.Notes {
			if err := tx.InsertNote(ctx, models.NewExerciseNote(logID, ex.ID, n.Text, models.Sentiment(n.Sentiment))); err != nil {
				return err
			}
		}
	}

	for _, n := range rec.GeneralNotes {
		if err := tx.InsertNote(ctx, models.NewGeneralNote(logID, n.Text, n.Category, models.Sentiment(n.Sentiment))); err != nil {
			return err
		}
	}

	return nil
}
