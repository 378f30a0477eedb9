// ABOUTME: Repository interface for workout journal storage.
// ABOUTME: Defines the persistence gateway used by the lifecycle service and surfaces.
package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/gains/internal/models"
)

// Repository defines the storage interface for workout logs and their
// derived rows. Multi-statement writes go through WithTx.
type Repository interface {
	// Log operations
	CreateLog(ctx context.Context, w *models.WorkoutLog) error
	GetLog(ctx context.Context, idOrPrefix string) (*models.WorkoutLog, error)
	GetLogDetail(ctx context.Context, idOrPrefix string) (*models.LogDetail, error)
	ListLogs(ctx context.Context, limit int) ([]*models.WorkoutLog, error)

	// Exercise operations
	GetOrCreateExercise(ctx context.Context, name string) (*models.Exercise, error)
	GetExercise(ctx context.Context, name string) (*models.Exercise, error)
	ListExercises(ctx context.Context) ([]*models.Exercise, error)
	ExerciseHistory(ctx context.Context, exerciseID uuid.UUID) (*models.ExerciseHistory, error)

	// Derived rows
	ListExerciseRecords(ctx context.Context, logID uuid.UUID) ([]models.ExerciseRecord, error)
	ListNotes(ctx context.Context, logID uuid.UUID) ([]models.Note, error)
	ListDailyMetrics(ctx context.Context, logID uuid.UUID) ([]models.DailyMetric, error)
	MetricsFeed(ctx context.Context, metricName *string, limit int) ([]models.DatedMetric, error)

	// Transactions
	WithTx(ctx context.Context, fn func(tx *Tx) error) error

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}
