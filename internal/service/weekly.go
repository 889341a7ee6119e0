package service

import (
	"context"
	"fmt"
	"time"

	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
)

// GenerateWeeklySummary rolls one week up into its statistics plus the
// week's insights rendered as highlight, concern, and recommendation text.
// weekStart may be any day; the week is the 7 days from it inclusive.
func (s *insightService) GenerateWeeklySummary(ctx context.Context, weekStart time.Time) (*models.WeeklySummary, error) {
	weekStart = models.Day(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)
	now := s.clk.Now()

	records, err := s.moodRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}

	last := models.Day(now)
	if weekEnd.After(last) {
		last = weekEnd
	}
	history := BuildDayAggregates(records, historyStart(records, weekStart), last)
	week := filterRange(history, weekStart, weekEnd)
	stats := calculateStatistics(week, history, now, s.cfg.TrendThreshold)

	var correlations []models.CorrelationInsight
	contexts, err := s.contextRepo.GetRange(ctx, weekStart, weekEnd)
	if err != nil {
		logger.Warn("failed to load context records for weekly summary", logger.Err(err))
	} else {
		correlations = AnalyzeCorrelations(contexts, moodByDate(week), s.cfg.CorrelationMinSample, s.cfg.CorrelationMinStrength)
	}

	dw := DetectionWindow{
		Days:         week,
		History:      history,
		Stats:        stats,
		Correlations: correlations,
		Now:          now,
	}

	candidates := make([]models.SmartInsight, 0, 8)
	for _, d := range s.detectors {
		candidates = append(candidates, d.Detect(dw)...)
	}

	summary := &models.WeeklySummary{
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		Statistics:      stats,
		Highlights:      []string{},
		Concerns:        []string{},
		Recommendations: []string{},
	}
	for _, ins := range MergeInsights(candidates, 0) {
		switch ins.Type {
		case models.InsightTypeCelebration, models.InsightTypeAchievement, models.InsightTypePattern:
			summary.Highlights = append(summary.Highlights, ins.Description)
		case models.InsightTypeConcern:
			summary.Concerns = append(summary.Concerns, ins.Description)
		case models.InsightTypeSuggestion, models.InsightTypeActionable:
			summary.Recommendations = append(summary.Recommendations, ins.Description)
		}
	}

	return summary, nil
}
