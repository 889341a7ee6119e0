package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/repository"
)

type moodService struct {
	moodRepo    repository.MoodRepository
	clk         clockNow
	invalidator InsightInvalidator
}

// NewMoodService creates a new mood service
func NewMoodService(moodRepo repository.MoodRepository, clk clockNow, invalidator InsightInvalidator) MoodService {
	return &moodService{
		moodRepo:    moodRepo,
		clk:         clk,
		invalidator: invalidator,
	}
}

// SaveMood validates and stores one segment rating, overwriting any earlier
// rating for the same date and segment. Ratings are kept to one decimal.
func (s *moodService) SaveMood(ctx context.Context, req *models.SaveMoodRequest) (*models.MoodRecord, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := s.clk.Now()
	if date.After(models.Day(now)) {
		return nil, ErrFutureDate
	}
	if !req.Segment.Valid() {
		return nil, ErrInvalidSegment
	}
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return nil, ErrInvalidRating
	}

	record := &models.MoodRecord{
		Date:     date,
		Segment:  req.Segment,
		Rating:   math.Round(req.Rating*10) / 10,
		Note:     strings.TrimSpace(req.Note),
		LoggedAt: now,
	}

	if err := s.moodRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save mood: %w", err)
	}

	s.invalidator.NotifyDataChanged()
	return record, nil
}

// GetDay returns the raw entries logged for one date. A date with no
// entries is a normal response with an empty list, not an error.
func (s *moodService) GetDay(ctx context.Context, date time.Time) (*models.DayMoods, error) {
	records, err := s.moodRepo.GetByDate(ctx, models.Day(date))
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	if records == nil {
		records = []models.MoodRecord{}
	}

	return &models.DayMoods{
		Date:    models.Day(date),
		Entries: records,
	}, nil
}

// DeleteMood removes one segment's rating for a date. Deleting an entry
// that does not exist is a no-op.
func (s *moodService) DeleteMood(ctx context.Context, date time.Time, segment models.Segment) error {
	if !segment.Valid() {
		return ErrInvalidSegment
	}

	if err := s.moodRepo.Delete(ctx, models.Day(date), segment); err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}

	s.invalidator.NotifyDataChanged()
	return nil
}

// GetEarliestMoodDate returns the first date with any mood data, or nil
// when nothing has been logged yet.
func (s *moodService) GetEarliestMoodDate(ctx context.Context) (*time.Time, error) {
	earliest, err := s.moodRepo.EarliestDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find earliest mood date: %w", err)
	}
	return earliest, nil
}
