package service

import (
	"context"
	"time"

	"github.com/moodlens/backend/internal/models"
)

// MoodService defines the interface for mood logging business logic
type MoodService interface {
	SaveMood(ctx context.Context, req *models.SaveMoodRequest) (*models.MoodRecord, error)
	GetDay(ctx context.Context, date time.Time) (*models.DayMoods, error)
	DeleteMood(ctx context.Context, date time.Time, segment models.Segment) error
	GetEarliestMoodDate(ctx context.Context) (*time.Time, error)
}

// ContextService defines the interface for day context business logic
type ContextService interface {
	SaveContext(ctx context.Context, date time.Time, req *models.SaveContextRequest) (*models.ContextRecord, error)
	GetContext(ctx context.Context, date time.Time) (*models.ContextRecord, error)
	DeleteContext(ctx context.Context, date time.Time) error
}

// AnalyticsService defines the interface for aggregate and statistics queries
type AnalyticsService interface {
	GetMoodTrends(ctx context.Context, start, end time.Time) ([]models.DayAggregate, error)
	GetStatistics(ctx context.Context, start, end time.Time) (*models.Statistics, error)
}

// InsightService defines the interface for insight generation. It owns the
// insight cache; mood and context writes invalidate it through the
// InsightInvalidator side of the implementation.
type InsightService interface {
	GenerateInsights(ctx context.Context, forceRefresh bool) (*models.InsightsResponse, error)
	GenerateCorrelationInsights(ctx context.Context, windowDays int) ([]models.CorrelationInsight, error)
	GenerateWeeklySummary(ctx context.Context, weekStart time.Time) (*models.WeeklySummary, error)
}

// InsightInvalidator is notified after every successful mood or context
// write so cached insights never outlive the data they were computed from.
type InsightInvalidator interface {
	NotifyDataChanged()
}

// InsightEngine is the full surface of the insight implementation: the
// query side plus the invalidation hook the write services depend on.
type InsightEngine interface {
	InsightService
	InsightInvalidator
}

// WeatherService defines the interface for fetching current weather used to
// auto-fill day context records.
type WeatherService interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*models.Weather, error)
}
