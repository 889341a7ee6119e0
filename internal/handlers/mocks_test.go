package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/models"
)

// mockMoodService implements service.MoodService with overridable funcs.
type mockMoodService struct {
	SaveMoodFunc            func(ctx context.Context, req *models.SaveMoodRequest) (*models.MoodRecord, error)
	GetDayFunc              func(ctx context.Context, date time.Time) (*models.DayMoods, error)
	DeleteMoodFunc          func(ctx context.Context, date time.Time, segment models.Segment) error
	GetEarliestMoodDateFunc func(ctx context.Context) (*time.Time, error)
}

func (m *mockMoodService) SaveMood(ctx context.Context, req *models.SaveMoodRequest) (*models.MoodRecord, error) {
	if m.SaveMoodFunc != nil {
		return m.SaveMoodFunc(ctx, req)
	}
	return &models.MoodRecord{}, nil
}

func (m *mockMoodService) GetDay(ctx context.Context, date time.Time) (*models.DayMoods, error) {
	if m.GetDayFunc != nil {
		return m.GetDayFunc(ctx, date)
	}
	return &models.DayMoods{Date: date, Entries: []models.MoodRecord{}}, nil
}

func (m *mockMoodService) DeleteMood(ctx context.Context, date time.Time, segment models.Segment) error {
	if m.DeleteMoodFunc != nil {
		return m.DeleteMoodFunc(ctx, date, segment)
	}
	return nil
}

func (m *mockMoodService) GetEarliestMoodDate(ctx context.Context) (*time.Time, error) {
	if m.GetEarliestMoodDateFunc != nil {
		return m.GetEarliestMoodDateFunc(ctx)
	}
	return nil, nil
}

// mockContextService implements service.ContextService with overridable funcs.
type mockContextService struct {
	SaveContextFunc   func(ctx context.Context, date time.Time, req *models.SaveContextRequest) (*models.ContextRecord, error)
	GetContextFunc    func(ctx context.Context, date time.Time) (*models.ContextRecord, error)
	DeleteContextFunc func(ctx context.Context, date time.Time) error
}

func (m *mockContextService) SaveContext(ctx context.Context, date time.Time, req *models.SaveContextRequest) (*models.ContextRecord, error) {
	if m.SaveContextFunc != nil {
		return m.SaveContextFunc(ctx, date, req)
	}
	return &models.ContextRecord{Date: date}, nil
}

func (m *mockContextService) GetContext(ctx context.Context, date time.Time) (*models.ContextRecord, error) {
	if m.GetContextFunc != nil {
		return m.GetContextFunc(ctx, date)
	}
	return nil, nil
}

func (m *mockContextService) DeleteContext(ctx context.Context, date time.Time) error {
	if m.DeleteContextFunc != nil {
		return m.DeleteContextFunc(ctx, date)
	}
	return nil
}

// mockAnalyticsService implements service.AnalyticsService with overridable funcs.
type mockAnalyticsService struct {
	GetMoodTrendsFunc func(ctx context.Context, start, end time.Time) ([]models.DayAggregate, error)
	GetStatisticsFunc func(ctx context.Context, start, end time.Time) (*models.Statistics, error)
}

func (m *mockAnalyticsService) GetMoodTrends(ctx context.Context, start, end time.Time) ([]models.DayAggregate, error) {
	if m.GetMoodTrendsFunc != nil {
		return m.GetMoodTrendsFunc(ctx, start, end)
	}
	return []models.DayAggregate{}, nil
}

func (m *mockAnalyticsService) GetStatistics(ctx context.Context, start, end time.Time) (*models.Statistics, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx, start, end)
	}
	return &models.Statistics{Trend: models.TrendStable}, nil
}

// mockInsightService implements service.InsightService with overridable funcs.
type mockInsightService struct {
	GenerateInsightsFunc            func(ctx context.Context, forceRefresh bool) (*models.InsightsResponse, error)
	GenerateCorrelationInsightsFunc func(ctx context.Context, windowDays int) ([]models.CorrelationInsight, error)
	GenerateWeeklySummaryFunc       func(ctx context.Context, weekStart time.Time) (*models.WeeklySummary, error)
}

func (m *mockInsightService) GenerateInsights(ctx context.Context, forceRefresh bool) (*models.InsightsResponse, error) {
	if m.GenerateInsightsFunc != nil {
		return m.GenerateInsightsFunc(ctx, forceRefresh)
	}
	return &models.InsightsResponse{Insights: []models.SmartInsight{}}, nil
}

func (m *mockInsightService) GenerateCorrelationInsights(ctx context.Context, windowDays int) ([]models.CorrelationInsight, error) {
	if m.GenerateCorrelationInsightsFunc != nil {
		return m.GenerateCorrelationInsightsFunc(ctx, windowDays)
	}
	return []models.CorrelationInsight{}, nil
}

func (m *mockInsightService) GenerateWeeklySummary(ctx context.Context, weekStart time.Time) (*models.WeeklySummary, error) {
	if m.GenerateWeeklySummaryFunc != nil {
		return m.GenerateWeeklySummaryFunc(ctx, weekStart)
	}
	return &models.WeeklySummary{WeekStart: weekStart}, nil
}

// mockWeatherService implements service.WeatherService with an overridable func.
type mockWeatherService struct {
	CurrentWeatherFunc func(ctx context.Context, lat, lon float64) (*models.Weather, error)
}

func (m *mockWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	if m.CurrentWeatherFunc != nil {
		return m.CurrentWeatherFunc(ctx, lat, lon)
	}
	return &models.Weather{Condition: models.WeatherSunny, Temperature: 20, Unit: models.UnitCelsius}, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// parseJSON decodes a recorded response body into a generic map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	return result
}
