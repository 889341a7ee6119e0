package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moodlens/backend/internal/models"
)

const (
	// SubjectStreak is the de-duplication subject for logging-streak insights.
	SubjectStreak = "logging-streak"

	// SubjectTrend is the de-duplication subject for mood-trend insights.
	SubjectTrend = "mood-trend"

	// SubjectForecast is the de-duplication subject for the mood forecast.
	SubjectForecast = "mood-forecast"

	// CorrelationInsightLimit caps how many correlations become insights.
	CorrelationInsightLimit = 3

	// ForecastMinRecentDays is the minimum logged days in the trailing week
	// required before a forecast is offered at all.
	ForecastMinRecentDays = 3

	// StreakBreakGraceDays is how recently a streak must have ended for the
	// break to still be worth mentioning.
	StreakBreakGraceDays = 2
)

// streakMilestones are the streak lengths worth celebrating explicitly.
var streakMilestones = map[int]bool{
	3: true, 7: true, 14: true, 30: true, 60: true, 100: true, 365: true,
}

// DetectionWindow carries everything a detector may read: the aggregates of
// the analysis window, the full per-day history through today, statistics
// over the window, and the scored factor correlations.
type DetectionWindow struct {
	Days         []models.DayAggregate
	History      []models.DayAggregate
	Stats        models.Statistics
	Correlations []models.CorrelationInsight
	Now          time.Time
}

// Detector produces zero or more candidate insights from one view of the
// data. Detectors never fail; when their signal is absent they return an
// empty slice.
type Detector interface {
	Name() string
	Detect(w DetectionWindow) []models.SmartInsight
}

// ===== Streak detector =====

// StreakDetector turns logging streaks into celebrations, ongoing-streak
// achievements, and a concern when a meaningful streak just ended.
type StreakDetector struct{}

func (StreakDetector) Name() string { return "streak" }

func (StreakDetector) Detect(w DetectionWindow) []models.SmartInsight {
	insights := make([]models.SmartInsight, 0, 1)

	streak := w.Stats.TotalStreak
	switch {
	case streak >= 3 && streakMilestones[streak]:
		insights = append(insights, models.SmartInsight{
			ID:          uuid.New().String(),
			Type:        models.InsightTypeCelebration,
			Priority:    milestonePriority(streak),
			Subject:     SubjectStreak,
			Title:       fmt.Sprintf("%d-day streak!", streak),
			Description: fmt.Sprintf("You've logged your mood %d days in a row. That consistency is what makes your insights trustworthy.", streak),
			Data:        map[string]any{"streak_days": streak},
			CreatedAt:   w.Now,
		})
	case streak >= 3:
		insights = append(insights, models.SmartInsight{
			ID:          uuid.New().String(),
			Type:        models.InsightTypeAchievement,
			Priority:    models.PriorityLow,
			Subject:     SubjectStreak,
			Title:       "Streak going strong",
			Description: fmt.Sprintf("You've logged your mood %d days in a row. Next stop: %d days.", streak, nextMilestone(streak)),
			Data:        map[string]any{"streak_days": streak},
			CreatedAt:   w.Now,
		})
	case streak == 0:
		if ended, length := recentlyEndedStreak(w.History, w.Now); ended {
			insights = append(insights, models.SmartInsight{
				ID:          uuid.New().String(),
				Type:        models.InsightTypeConcern,
				Priority:    models.PriorityMedium,
				Subject:     SubjectStreak,
				Title:       "Your streak ended",
				Description: fmt.Sprintf("A %d-day logging streak ended recently. One entry today starts a new one.", length),
				ActionRoute: "/log",
				ActionText:  "Log today's mood",
				Data:        map[string]any{"previous_streak": length},
				CreatedAt:   w.Now,
			})
		}
	}

	return insights
}

func milestonePriority(streak int) models.InsightPriority {
	switch {
	case streak >= 30:
		return models.PriorityHigh
	case streak >= 7:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func nextMilestone(streak int) int {
	for _, m := range []int{3, 7, 14, 30, 60, 100, 365} {
		if m > streak {
			return m
		}
	}
	return streak + 365
}

// recentlyEndedStreak reports whether a streak of at least 3 days ended
// within the break grace window. The walk starts from the day before
// yesterday because a zero streak already means today and yesterday are
// both empty.
func recentlyEndedStreak(history []models.DayAggregate, now time.Time) (bool, int) {
	logged := make(map[string]bool, len(history))
	for _, agg := range history {
		if agg.HasAnyMood {
			logged[models.FormatDate(agg.Date)] = true
		}
	}

	lastDay := models.Day(now).AddDate(0, 0, -StreakBreakGraceDays)
	if !logged[models.FormatDate(lastDay)] {
		return false, 0
	}

	length := 0
	for day := lastDay; logged[models.FormatDate(day)]; day = day.AddDate(0, 0, -1) {
		length++
	}
	return length >= 3, length
}

// ===== Trend detector =====

// TrendDetector reports on the window's mood direction: an achievement when
// mood is improving, a concern when it is declining.
type TrendDetector struct{}

func (TrendDetector) Name() string { return "trend" }

func (TrendDetector) Detect(w DetectionWindow) []models.SmartInsight {
	confidence := trendConfidence(w.Stats)

	switch w.Stats.Trend {
	case models.TrendImproving:
		return []models.SmartInsight{{
			ID:          uuid.New().String(),
			Type:        models.InsightTypeAchievement,
			Priority:    models.PriorityMedium,
			Subject:     SubjectTrend,
			Title:       "Your mood is trending up",
			Description: fmt.Sprintf("The second half of the last %d days averaged noticeably higher than the first. Whatever changed, it's working.", w.Stats.TotalDays),
			Confidence:  confidence,
			CreatedAt:   w.Now,
		}}
	case models.TrendDeclining:
		return []models.SmartInsight{{
			ID:          uuid.New().String(),
			Type:        models.InsightTypeConcern,
			Priority:    models.PriorityHigh,
			Subject:     SubjectTrend,
			Title:       "Your mood has been slipping",
			Description: fmt.Sprintf("Your average over the later half of the last %d days is lower than the earlier half. Your factor correlations may show what shifted.", w.Stats.TotalDays),
			Confidence:  confidence,
			ActionRoute: "/insights/correlations",
			ActionText:  "See what's linked",
			CreatedAt:   w.Now,
		}}
	}

	return nil
}

// trendConfidence grades a trend call by how much of the window actually
// has data.
func trendConfidence(stats models.Statistics) *float64 {
	if stats.TotalDays == 0 {
		return nil
	}
	coverage := float64(stats.DaysLogged) / float64(stats.TotalDays)
	return &coverage
}

// ===== Correlation detector =====

// CorrelationDetector surfaces the strongest factor correlations as pattern
// insights and turns negative correlations on controllable factors into
// suggestions.
type CorrelationDetector struct{}

func (CorrelationDetector) Name() string { return "correlation" }

func (CorrelationDetector) Detect(w DetectionWindow) []models.SmartInsight {
	insights := make([]models.SmartInsight, 0, CorrelationInsightLimit)

	top := w.Correlations
	if len(top) > CorrelationInsightLimit {
		top = top[:CorrelationInsightLimit]
	}

	for _, corr := range top {
		strength := corr.Strength
		insights = append(insights, models.SmartInsight{
			ID:          uuid.New().String(),
			Type:        models.InsightTypePattern,
			Priority:    correlationPriority(strength),
			Subject:     correlationSubject(corr),
			Title:       corr.Title,
			Description: corr.Description,
			Confidence:  &strength,
			Data: map[string]any{
				"category":     string(corr.Category),
				"factor_value": corr.FactorValue,
				"group_mean":   corr.GroupMean,
				"overall_mean": corr.OverallMean,
				"sample_size":  corr.SampleSize,
			},
			CreatedAt: w.Now,
		})

		if suggestion, ok := suggestionFor(corr, w.Now); ok {
			insights = append(insights, suggestion)
		}
	}

	return insights
}

func correlationSubject(corr models.CorrelationInsight) string {
	return fmt.Sprintf("correlation:%s:%s", corr.Category, corr.FactorValue)
}

func correlationPriority(strength float64) models.InsightPriority {
	switch {
	case strength >= 0.7:
		return models.PriorityHigh
	case strength >= 0.5:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// suggestionFor proposes concrete steps when a controllable factor drags
// mood down. Weather and tag factors get no suggestion; there is nothing
// actionable about rain.
func suggestionFor(corr models.CorrelationInsight, now time.Time) (models.SmartInsight, bool) {
	if corr.Positive() {
		return models.SmartInsight{}, false
	}

	var title, description string
	var steps []string

	switch {
	case corr.Category == models.FactorSleep && corr.FactorValue == "poor":
		title = "Protect your sleep"
		description = fmt.Sprintf("Poor sleep lines up with your lower-mood days (%.1f vs your usual %.1f). Small changes to your evenings could pay off.", corr.GroupMean, corr.OverallMean)
		steps = []string{
			"Pick a consistent bedtime and hold it for a week",
			"Keep screens out of the last 30 minutes before bed",
			"Note tonight's bedtime in your daily context",
		}
	case corr.Category == models.FactorStress && corr.FactorValue == "high":
		title = "Take the pressure down"
		description = fmt.Sprintf("High-stress days average %.1f against your usual %.1f. Building in recovery time may soften them.", corr.GroupMean, corr.OverallMean)
		steps = []string{
			"Schedule one real break in the middle of the workday",
			"Try two minutes of slow breathing when stress spikes",
			"Flag tomorrow's biggest stressor and plan it first",
		}
	case corr.Category == models.FactorExercise && corr.FactorValue == string(models.ExerciseNone):
		title = "Move a little more"
		description = fmt.Sprintf("Days without exercise average %.1f against your usual %.1f. Even light movement seems to matter for you.", corr.GroupMean, corr.OverallMean)
		steps = []string{
			"Take a 15-minute walk after lunch",
			"Put one light workout on this week's calendar",
		}
	default:
		return models.SmartInsight{}, false
	}

	strength := corr.Strength
	return models.SmartInsight{
		ID:          uuid.New().String(),
		Type:        models.InsightTypeSuggestion,
		Priority:    correlationPriority(strength),
		Subject:     correlationSubject(corr),
		Title:       title,
		Description: description,
		Confidence:  &strength,
		ActionSteps: steps,
		CreatedAt:   now,
	}, true
}

// ===== Forecast detector =====

// ForecastDetector predicts tomorrow's mood by blending the trailing week's
// average with the historical average for tomorrow's weekday.
type ForecastDetector struct {
	OverallWeight float64
	WeekdayWeight float64
}

func (ForecastDetector) Name() string { return "forecast" }

func (d ForecastDetector) Detect(w DetectionWindow) []models.SmartInsight {
	recentAvg, recentCount := trailingWeekAverage(w.History, w.Now)
	if recentCount < ForecastMinRecentDays {
		return nil
	}

	tomorrow := models.Day(w.Now).AddDate(0, 0, 1)
	predicted := recentAvg
	if weekdayAvg, ok := weekdayAverage(w.History, tomorrow.Weekday()); ok {
		predicted = d.OverallWeight*recentAvg + d.WeekdayWeight*weekdayAvg
	}
	if predicted < models.MinRating {
		predicted = models.MinRating
	}
	if predicted > models.MaxRating {
		predicted = models.MaxRating
	}

	confidence := float64(recentCount) / 7
	return []models.SmartInsight{{
		ID:          uuid.New().String(),
		Type:        models.InsightTypePrediction,
		Priority:    models.PriorityLow,
		Subject:     SubjectForecast,
		Title:       fmt.Sprintf("Tomorrow is shaping up around %.1f", predicted),
		Description: fmt.Sprintf("Based on your last week and your typical %s, expect your mood near %.1f.", tomorrow.Weekday(), predicted),
		Confidence:  &confidence,
		Data: map[string]any{
			"predicted_mood": predicted,
			"for_date":       models.FormatDate(tomorrow),
		},
		CreatedAt: w.Now,
	}}
}

// trailingWeekAverage averages the day averages of logged days among the 7
// days ending today.
func trailingWeekAverage(history []models.DayAggregate, now time.Time) (avg float64, count int) {
	today := models.Day(now)
	start := today.AddDate(0, 0, -6)

	var sum float64
	for _, agg := range history {
		if agg.Date.Before(start) || agg.Date.After(today) {
			continue
		}
		if !agg.HasAnyMood {
			continue
		}
		sum += agg.DayAverage
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

// weekdayAverage averages the day averages of every logged day in history
// falling on the given weekday.
func weekdayAverage(history []models.DayAggregate, weekday time.Weekday) (float64, bool) {
	var sum float64
	var count int
	for _, agg := range history {
		if !agg.HasAnyMood || agg.Date.Weekday() != weekday {
			continue
		}
		sum += agg.DayAverage
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
