package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

// Segment identifies one of the three fixed daily logging slots.
type Segment int

const (
	SegmentMorning Segment = 0
	SegmentMidday  Segment = 1
	SegmentEvening Segment = 2
)

// String returns the human-readable name of the segment.
func (s Segment) String() string {
	switch s {
	case SegmentMorning:
		return "morning"
	case SegmentMidday:
		return "midday"
	case SegmentEvening:
		return "evening"
	default:
		return fmt.Sprintf("segment(%d)", int(s))
	}
}

// Valid reports whether the segment is one of the three known slots.
func (s Segment) Valid() bool {
	return s >= SegmentMorning && s <= SegmentEvening
}

// Rating bounds for a mood entry. Writes outside this range are rejected
// at the write boundary; the analytics engine clamps defensively.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// MoodRecord is a single logged rating for one (date, segment) slot.
// Date is a calendar day (midnight UTC); LoggedAt is the wall-clock time
// the record was written, which may fall on a later day for backfilled
// entries.
type MoodRecord struct {
	Date     time.Time `json:"date"`
	Segment  Segment   `json:"segment"`
	Rating   float64   `json:"rating"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// LoggedLive reports whether the record was written on the same calendar
// day it is for, i.e. logged in real time rather than backfilled.
func (m MoodRecord) LoggedLive() bool {
	return SameDay(m.Date, m.LoggedAt)
}

// SegmentEntry is one segment's data inside a DayAggregate.
type SegmentEntry struct {
	Segment  Segment   `json:"segment"`
	Rating   float64   `json:"rating"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// DayAggregate rolls one date's segment entries into a single record.
// Days without data are still represented, with HasAnyMood=false and
// DayAverage=0.
type DayAggregate struct {
	Date       time.Time      `json:"date"`
	Entries    []SegmentEntry `json:"entries"`
	HasAnyMood bool           `json:"has_any_mood"`
	DayAverage float64        `json:"day_average"`
}

// HasLiveEntry reports whether any segment entry was written on the same
// calendar day as the aggregate's date.
func (d DayAggregate) HasLiveEntry() bool {
	for _, e := range d.Entries {
		if SameDay(d.Date, e.LoggedAt) {
			return true
		}
	}
	return false
}

// TrendDirection classifies how mood moved across a range.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// Statistics summarizes an aggregated range. AverageMood and BestDay are
// 0 (not a real score) when no day in the range has data. The streaks are
// counted over all history, walking backward from "today": LiveStreak
// only counts days with at least one same-day write, TotalStreak counts
// any day with data, so LiveStreak <= TotalStreak always.
type Statistics struct {
	AverageMood float64        `json:"average_mood"`
	DaysLogged  int            `json:"days_logged"`
	TotalDays   int            `json:"total_days"`
	BestDay     float64        `json:"best_day"`
	BestDayDate *time.Time     `json:"best_day_date,omitempty"`
	Trend       TrendDirection `json:"trend"`
	LiveStreak  int            `json:"live_streak"`
	TotalStreak int            `json:"total_streak"`
}

// SaveMoodRequest is the request to log or overwrite one segment rating.
type SaveMoodRequest struct {
	Date    string  `json:"date" binding:"required"`
	Segment Segment `json:"segment" binding:"min=0,max=2"`
	Rating  float64 `json:"rating" binding:"required"`
	Note    string  `json:"note"`
}

// DayMoods is the response for a single date's raw entries.
type DayMoods struct {
	Date    time.Time    `json:"date"`
	Entries []MoodRecord `json:"entries"`
}

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a calendar day in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a calendar day in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
