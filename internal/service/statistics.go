package service

import (
	"time"

	"github.com/moodlens/backend/internal/models"
)

// DefaultTrendThreshold is the minimum half-range average difference, in
// rating points, before a trend counts as improving or declining. The
// analytics service overrides it from configuration.
const DefaultTrendThreshold = 0.3

// CalculateStatistics computes Statistics over the given aggregates.
// Range figures (average, best day, trend) cover the whole input; both
// streaks walk backward from now over the same input.
func CalculateStatistics(aggregates []models.DayAggregate, now time.Time) models.Statistics {
	return calculateStatistics(aggregates, aggregates, now, DefaultTrendThreshold)
}

// CalculateStatisticsForRange computes range figures over the aggregates
// falling inside [start, end] while streaks still walk the full input.
// Use this when the caller holds history wider than the displayed range.
func CalculateStatisticsForRange(aggregates []models.DayAggregate, start, end, now time.Time) models.Statistics {
	return calculateStatistics(filterRange(aggregates, start, end), aggregates, now, DefaultTrendThreshold)
}

func calculateStatistics(rangeAggs, allAggs []models.DayAggregate, now time.Time, trendThreshold float64) models.Statistics {
	stats := models.Statistics{
		TotalDays: len(rangeAggs),
		Trend:     classifyTrend(rangeAggs, trendThreshold),
	}

	var sum float64
	for _, agg := range rangeAggs {
		if !agg.HasAnyMood {
			continue
		}
		stats.DaysLogged++
		sum += agg.DayAverage
		if agg.DayAverage > stats.BestDay {
			stats.BestDay = agg.DayAverage
			d := agg.Date
			stats.BestDayDate = &d
		}
	}
	if stats.DaysLogged > 0 {
		stats.AverageMood = sum / float64(stats.DaysLogged)
	}

	stats.LiveStreak = streakFrom(allAggs, now, models.DayAggregate.HasLiveEntry)
	stats.TotalStreak = streakFrom(allAggs, now, func(agg models.DayAggregate) bool { return agg.HasAnyMood })

	return stats
}

// classifyTrend splits the range into an earlier and a later half by date
// and compares the halves' averages over their logged days. The middle day
// of an odd-length range falls into the later half. A half without any
// logged days gives no signal, so the trend reads stable.
func classifyTrend(aggregates []models.DayAggregate, threshold float64) models.TrendDirection {
	if len(aggregates) < 2 {
		return models.TrendStable
	}

	mid := len(aggregates) / 2
	earlier, okEarlier := loggedAverage(aggregates[:mid])
	later, okLater := loggedAverage(aggregates[mid:])
	if !okEarlier || !okLater {
		return models.TrendStable
	}

	switch {
	case later-earlier > threshold:
		return models.TrendImproving
	case earlier-later > threshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// loggedAverage is the mean DayAverage over days with data. The second
// return is false when no day in the slice has data.
func loggedAverage(aggregates []models.DayAggregate) (float64, bool) {
	var sum float64
	count := 0
	for _, agg := range aggregates {
		if !agg.HasAnyMood {
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

// streakFrom counts consecutive qualifying days walking backward from now.
// A not-yet-logged today does not break the streak; the walk then starts
// at yesterday. Any other gap ends the count immediately.
func streakFrom(aggregates []models.DayAggregate, now time.Time, qualifies func(models.DayAggregate) bool) int {
	byDate := make(map[string]models.DayAggregate, len(aggregates))
	for _, agg := range aggregates {
		byDate[models.FormatDate(agg.Date)] = agg
	}

	day := models.Day(now)
	if agg, ok := byDate[models.FormatDate(day)]; !ok || !qualifies(agg) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		agg, ok := byDate[models.FormatDate(day)]
		if !ok || !qualifies(agg) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
