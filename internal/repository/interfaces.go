package repository

import (
	"context"
	"time"

	"github.com/moodlens/backend/internal/models"
)

// MoodRepository defines the interface for mood record data access.
// Absence is valid "no data": lookups return empty results, not errors.
type MoodRepository interface {
	Upsert(ctx context.Context, record *models.MoodRecord) error
	GetByDate(ctx context.Context, date time.Time) ([]models.MoodRecord, error)
	GetRange(ctx context.Context, start, end time.Time) ([]models.MoodRecord, error)
	GetAll(ctx context.Context) ([]models.MoodRecord, error)
	Delete(ctx context.Context, date time.Time, segment models.Segment) error
	EarliestDate(ctx context.Context) (*time.Time, error)
}

// ContextRepository defines the interface for day context data access.
// GetByDate returns (nil, nil) when no record exists for the date.
type ContextRepository interface {
	Upsert(ctx context.Context, record *models.ContextRecord) error
	GetByDate(ctx context.Context, date time.Time) (*models.ContextRecord, error)
	GetRange(ctx context.Context, start, end time.Time) ([]models.ContextRecord, error)
	Delete(ctx context.Context, date time.Time) error
}

// SettingsRepository defines the interface for key/value settings access.
// Get returns "" for keys that have never been set.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
