package service

import (
	"context"
	"fmt"
	"time"

	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/repository"
)

// BuildDayAggregates rolls raw mood records up into one DayAggregate per
// calendar day over the inclusive [start, end] range. Every day in the
// range gets an entry; days without records have HasAnyMood=false and a
// zero DayAverage. Records outside the range are ignored.
func BuildDayAggregates(records []models.MoodRecord, start, end time.Time) []models.DayAggregate {
	start = models.Day(start)
	end = models.Day(end)
	if end.Before(start) {
		return []models.DayAggregate{}
	}

	byDate := make(map[string][]models.SegmentEntry)
	for _, r := range records {
		day := models.Day(r.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		byDate[models.FormatDate(day)] = append(byDate[models.FormatDate(day)], models.SegmentEntry{
			Segment:  r.Segment,
			Rating:   clampRating(r.Rating),
			Note:     r.Note,
			LoggedAt: r.LoggedAt,
		})
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	aggregates := make([]models.DayAggregate, 0, totalDays)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entries := byDate[models.FormatDate(day)]

		agg := models.DayAggregate{
			Date:       day,
			Entries:    entries,
			HasAnyMood: len(entries) > 0,
		}
		if len(entries) > 0 {
			var sum float64
			for _, e := range entries {
				sum += e.Rating
			}
			agg.DayAverage = sum / float64(len(entries))
		}
		aggregates = append(aggregates, agg)
	}

	return aggregates
}

// clampRating pins a rating into [1,10]. Out-of-range values are rejected
// at the write boundary, so anything arriving here means the store was
// modified out of band; clamp and log rather than poison the aggregates.
func clampRating(rating float64) float64 {
	if rating < models.MinRating {
		logger.Warn("clamping out-of-range mood rating", logger.Float64("rating", rating))
		return models.MinRating
	}
	if rating > models.MaxRating {
		logger.Warn("clamping out-of-range mood rating", logger.Float64("rating", rating))
		return models.MaxRating
	}
	return rating
}

type analyticsService struct {
	moodRepo       repository.MoodRepository
	clk            clockNow
	trendThreshold float64
}

// clockNow is the minimal clock surface the analytics services need.
type clockNow interface {
	Now() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(moodRepo repository.MoodRepository, clk clockNow, trendThreshold float64) AnalyticsService {
	return &analyticsService{
		moodRepo:       moodRepo,
		clk:            clk,
		trendThreshold: trendThreshold,
	}
}

// GetMoodTrends returns one DayAggregate per day over [start, end].
func (s *analyticsService) GetMoodTrends(ctx context.Context, start, end time.Time) ([]models.DayAggregate, error) {
	records, err := s.moodRepo.GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}
	return BuildDayAggregates(records, start, end), nil
}

// GetStatistics computes range statistics over [start, end]. Streaks are
// always computed over all history, walking backward from today, so the
// full record set is loaded regardless of the queried range.
func (s *analyticsService) GetStatistics(ctx context.Context, start, end time.Time) (*models.Statistics, error) {
	records, err := s.moodRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}

	now := s.clk.Now()
	last := models.Day(now)
	if d := models.Day(end); d.After(last) {
		last = d
	}
	all := BuildDayAggregates(records, historyStart(records, start), last)
	stats := calculateStatistics(filterRange(all, start, end), all, now, s.trendThreshold)
	return &stats, nil
}

// historyStart picks the earlier of the queried start and the first
// recorded day, so streak walks see the full history.
func historyStart(records []models.MoodRecord, start time.Time) time.Time {
	start = models.Day(start)
	for _, r := range records {
		if d := models.Day(r.Date); d.Before(start) {
			start = d
		}
	}
	return start
}

// filterRange returns the aggregates whose dates fall inside [start, end].
func filterRange(aggregates []models.DayAggregate, start, end time.Time) []models.DayAggregate {
	start = models.Day(start)
	end = models.Day(end)
	out := make([]models.DayAggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		if agg.Date.Before(start) || agg.Date.After(end) {
			continue
		}
		out = append(out, agg)
	}
	return out
}
