package service

import (
	"testing"
	"time"

	"github.com/moodlens/backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// liveRecord is a mood entry written on its own day.
func liveRecord(day time.Time, segment models.Segment, rating float64) models.MoodRecord {
	return models.MoodRecord{
		Date:     day,
		Segment:  segment,
		Rating:   rating,
		LoggedAt: day.Add(9 * time.Hour),
	}
}

// backfilledRecord is a mood entry written two days after its own day.
func backfilledRecord(day time.Time, segment models.Segment, rating float64) models.MoodRecord {
	return models.MoodRecord{
		Date:     day,
		Segment:  segment,
		Rating:   rating,
		LoggedAt: day.AddDate(0, 0, 2).Add(10 * time.Hour),
	}
}

func TestBuildDayAggregates_EveryDayPresent(t *testing.T) {
	start := date(2025, 3, 1)
	end := date(2025, 3, 4)
	records := []models.MoodRecord{
		liveRecord(date(2025, 3, 1), models.SegmentMorning, 6.0),
		liveRecord(date(2025, 3, 1), models.SegmentEvening, 8.0),
		liveRecord(date(2025, 3, 3), models.SegmentMidday, 5.0),
	}

	aggregates := BuildDayAggregates(records, start, end)
	if len(aggregates) != 4 {
		t.Fatalf("Expected 4 aggregates, got %d", len(aggregates))
	}

	if !aggregates[0].HasAnyMood || aggregates[0].DayAverage != 7.0 {
		t.Errorf("Day 1: expected average 7.0 with mood, got %+v", aggregates[0])
	}
	if aggregates[1].HasAnyMood {
		t.Errorf("Day 2: expected no mood, got %+v", aggregates[1])
	}
	if !aggregates[2].HasAnyMood || aggregates[2].DayAverage != 5.0 {
		t.Errorf("Day 3: expected average 5.0, got %+v", aggregates[2])
	}
	if aggregates[3].HasAnyMood {
		t.Errorf("Day 4: expected no mood, got %+v", aggregates[3])
	}
}

func TestBuildDayAggregates_IgnoresRecordsOutsideRange(t *testing.T) {
	records := []models.MoodRecord{
		liveRecord(date(2025, 3, 1), models.SegmentMorning, 9.0),
		liveRecord(date(2025, 3, 5), models.SegmentMorning, 2.0),
	}

	aggregates := BuildDayAggregates(records, date(2025, 3, 2), date(2025, 3, 4))
	if len(aggregates) != 3 {
		t.Fatalf("Expected 3 aggregates, got %d", len(aggregates))
	}
	for _, agg := range aggregates {
		if agg.HasAnyMood {
			t.Errorf("Expected no mood on %s", models.FormatDate(agg.Date))
		}
	}
}

func TestBuildDayAggregates_EndBeforeStart(t *testing.T) {
	aggregates := BuildDayAggregates(nil, date(2025, 3, 4), date(2025, 3, 1))
	if len(aggregates) != 0 {
		t.Errorf("Expected empty aggregates, got %d", len(aggregates))
	}
}

func TestCalculateStatistics_SevenLiveDays(t *testing.T) {
	// 7 consecutive days, one morning entry of exactly 7.0 each, all
	// written same-day
	start := date(2025, 3, 1)
	end := date(2025, 3, 7)
	records := make([]models.MoodRecord, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		records = append(records, liveRecord(d, models.SegmentMorning, 7.0))
	}

	now := end.Add(18 * time.Hour)
	stats := CalculateStatistics(BuildDayAggregates(records, start, end), now)

	if stats.AverageMood != 7.0 {
		t.Errorf("Expected averageMood 7.0, got %v", stats.AverageMood)
	}
	if stats.DaysLogged != 7 {
		t.Errorf("Expected daysLogged 7, got %d", stats.DaysLogged)
	}
	if stats.TotalDays != 7 {
		t.Errorf("Expected totalDays 7, got %d", stats.TotalDays)
	}
	if stats.LiveStreak != 7 {
		t.Errorf("Expected liveStreak 7, got %d", stats.LiveStreak)
	}
	if stats.TotalStreak != 7 {
		t.Errorf("Expected totalStreak 7, got %d", stats.TotalStreak)
	}
	if stats.BestDay != 7.0 {
		t.Errorf("Expected bestDay 7.0, got %v", stats.BestDay)
	}
	if stats.BestDayDate == nil || !stats.BestDayDate.Equal(start) {
		t.Errorf("Expected bestDayDate %s, got %v", models.FormatDate(start), stats.BestDayDate)
	}
}

func TestCalculateStatistics_GapBreaksTotalStreak(t *testing.T) {
	// Days 1-7 logged except day 5; streaks counted backward from day 7
	start := date(2025, 3, 1)
	end := date(2025, 3, 7)
	records := make([]models.MoodRecord, 0, 6)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Day() == 5 {
			continue
		}
		records = append(records, liveRecord(d, models.SegmentMorning, 7.0))
	}

	now := end.Add(20 * time.Hour)
	stats := CalculateStatistics(BuildDayAggregates(records, start, end), now)

	if stats.DaysLogged != 6 {
		t.Errorf("Expected daysLogged 6, got %d", stats.DaysLogged)
	}
	if stats.TotalStreak != 2 {
		t.Errorf("Expected totalStreak 2 (days 6 and 7), got %d", stats.TotalStreak)
	}
	if stats.LiveStreak != 2 {
		t.Errorf("Expected liveStreak 2, got %d", stats.LiveStreak)
	}
}

func TestCalculateStatistics_BackfilledDayCountsTotalOnly(t *testing.T) {
	// Days 1-4 written live, day 5 backfilled two days later
	start := date(2025, 3, 1)
	records := []models.MoodRecord{
		liveRecord(date(2025, 3, 1), models.SegmentMorning, 6.0),
		liveRecord(date(2025, 3, 2), models.SegmentMorning, 6.0),
		liveRecord(date(2025, 3, 3), models.SegmentMorning, 6.0),
		liveRecord(date(2025, 3, 4), models.SegmentMorning, 6.0),
		backfilledRecord(date(2025, 3, 5), models.SegmentMorning, 6.0),
	}

	now := date(2025, 3, 5).Add(22 * time.Hour)
	stats := CalculateStatistics(BuildDayAggregates(records, start, date(2025, 3, 5)), now)

	if stats.TotalStreak != 5 {
		t.Errorf("Expected totalStreak 5, got %d", stats.TotalStreak)
	}
	if stats.LiveStreak != 4 {
		t.Errorf("Expected liveStreak 4, got %d", stats.LiveStreak)
	}
	if stats.LiveStreak > stats.TotalStreak {
		t.Errorf("liveStreak %d must not exceed totalStreak %d", stats.LiveStreak, stats.TotalStreak)
	}
}

func TestCalculateStatistics_UnloggedTodayKeepsStreak(t *testing.T) {
	// Days 1-4 logged, nothing yet today (day 5); the streak holds
	start := date(2025, 3, 1)
	end := date(2025, 3, 5)
	records := make([]models.MoodRecord, 0, 4)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		records = append(records, liveRecord(d, models.SegmentEvening, 8.0))
	}

	now := end.Add(8 * time.Hour)
	stats := CalculateStatistics(BuildDayAggregates(records, start, end), now)

	if stats.TotalStreak != 4 {
		t.Errorf("Expected totalStreak 4, got %d", stats.TotalStreak)
	}
	if stats.LiveStreak != 4 {
		t.Errorf("Expected liveStreak 4, got %d", stats.LiveStreak)
	}
}

func TestCalculateStatistics_ZeroStreaksAfterTwoEmptyDays(t *testing.T) {
	// Logged through day 3, then nothing on days 4 and 5
	start := date(2025, 3, 1)
	records := []models.MoodRecord{
		liveRecord(date(2025, 3, 1), models.SegmentMorning, 7.0),
		liveRecord(date(2025, 3, 2), models.SegmentMorning, 7.0),
		liveRecord(date(2025, 3, 3), models.SegmentMorning, 7.0),
	}

	now := date(2025, 3, 5).Add(12 * time.Hour)
	stats := CalculateStatistics(BuildDayAggregates(records, start, date(2025, 3, 5)), now)

	if stats.TotalStreak != 0 {
		t.Errorf("Expected totalStreak 0, got %d", stats.TotalStreak)
	}
	if stats.LiveStreak != 0 {
		t.Errorf("Expected liveStreak 0, got %d", stats.LiveStreak)
	}
}

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := CalculateStatistics(nil, date(2025, 3, 7))

	if stats.TotalDays != 0 || stats.DaysLogged != 0 {
		t.Errorf("Expected zero day counts, got %+v", stats)
	}
	if stats.AverageMood != 0 || stats.BestDay != 0 {
		t.Errorf("Expected zero sentinels for average and best day, got %+v", stats)
	}
	if stats.BestDayDate != nil {
		t.Errorf("Expected nil bestDayDate, got %v", stats.BestDayDate)
	}
	if stats.Trend != models.TrendStable {
		t.Errorf("Expected stable trend, got %s", stats.Trend)
	}
}

func TestCalculateStatisticsForRange_StreaksWalkFullHistory(t *testing.T) {
	// 10 logged days of history, range covers only the last 3
	start := date(2025, 3, 1)
	end := date(2025, 3, 10)
	records := make([]models.MoodRecord, 0, 10)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		records = append(records, liveRecord(d, models.SegmentMorning, 7.0))
	}
	history := BuildDayAggregates(records, start, end)

	now := end.Add(19 * time.Hour)
	stats := CalculateStatisticsForRange(history, date(2025, 3, 8), end, now)

	if stats.TotalDays != 3 {
		t.Errorf("Expected totalDays 3, got %d", stats.TotalDays)
	}
	if stats.DaysLogged != 3 {
		t.Errorf("Expected daysLogged 3, got %d", stats.DaysLogged)
	}
	if stats.TotalStreak != 10 {
		t.Errorf("Expected totalStreak 10 across full history, got %d", stats.TotalStreak)
	}
}

func trendAggregates(ratings []float64) []models.DayAggregate {
	start := date(2025, 4, 1)
	records := make([]models.MoodRecord, 0, len(ratings))
	for i, r := range ratings {
		if r == 0 {
			continue // 0 marks an unlogged day
		}
		records = append(records, liveRecord(start.AddDate(0, 0, i), models.SegmentMorning, r))
	}
	return BuildDayAggregates(records, start, start.AddDate(0, 0, len(ratings)-1))
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    models.TrendDirection
	}{
		{"improving", []float64{5.0, 5.0, 5.0, 6.0, 6.0, 6.0}, models.TrendImproving},
		{"declining", []float64{6.0, 6.0, 6.0, 5.0, 5.0, 5.0}, models.TrendDeclining},
		{"within threshold", []float64{5.0, 5.0, 5.0, 5.2, 5.2, 5.2}, models.TrendStable},
		{"single day", []float64{9.0}, models.TrendStable},
		{"empty later half", []float64{7.0, 7.0, 0, 0}, models.TrendStable},
		{"empty earlier half", []float64{0, 0, 7.0, 7.0}, models.TrendStable},
		// Middle day of an odd range belongs to the later half: with it in
		// the earlier half this case would read declining instead
		{"middle day in later half", []float64{5.0, 8.0, 5.0}, models.TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTrend(trendAggregates(tt.ratings), DefaultTrendThreshold)
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyTrend_Deterministic(t *testing.T) {
	aggregates := trendAggregates([]float64{4.0, 5.0, 0, 6.5, 7.0, 8.0})

	first := classifyTrend(aggregates, DefaultTrendThreshold)
	for i := 0; i < 5; i++ {
		if got := classifyTrend(aggregates, DefaultTrendThreshold); got != first {
			t.Fatalf("Trend changed between runs: %s then %s", first, got)
		}
	}
}
