package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/repository"
)

type contextService struct {
	contextRepo repository.ContextRepository
	weather     WeatherService
	clk         clockNow
	invalidator InsightInvalidator
}

// NewContextService creates a new context service. weather may be nil, in
// which case auto-fill requests are ignored.
func NewContextService(contextRepo repository.ContextRepository, weather WeatherService, clk clockNow, invalidator InsightInvalidator) ContextService {
	return &contextService{
		contextRepo: contextRepo,
		weather:     weather,
		clk:         clk,
		invalidator: invalidator,
	}
}

// SaveContext merge-upserts one date's context record. Fields absent from
// the request keep their stored value; fields sent as null are cleared;
// list fields replace wholesale when present. When coordinates are sent
// and no manual weather condition is, the weather fields are auto-filled
// from the provider; a failed fetch degrades to saving without weather.
func (s *contextService) SaveContext(ctx context.Context, date time.Time, req *models.SaveContextRequest) (*models.ContextRecord, error) {
	date = models.Day(date)
	now := s.clk.Now()
	if date.After(models.Day(now)) {
		return nil, ErrFutureDate
	}
	if err := validateContextRequest(req); err != nil {
		return nil, err
	}

	record, err := s.contextRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load context: %w", err)
	}
	if record == nil {
		record = &models.ContextRecord{Date: date}
	}

	applyContextRequest(record, req)

	if req.Latitude.Set && req.Latitude.Valid && req.Longitude.Set && req.Longitude.Valid && !req.WeatherCondition.Set {
		s.autoFillWeather(ctx, record, req.Latitude.Value, req.Longitude.Value)
	}

	record.UpdatedAt = now
	if err := s.contextRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save context: %w", err)
	}

	s.invalidator.NotifyDataChanged()
	return record, nil
}

// GetContext returns the context record for a date, or nil when none has
// been logged.
func (s *contextService) GetContext(ctx context.Context, date time.Time) (*models.ContextRecord, error) {
	record, err := s.contextRepo.GetByDate(ctx, models.Day(date))
	if err != nil {
		return nil, fmt.Errorf("failed to load context: %w", err)
	}
	return record, nil
}

// DeleteContext removes a date's context record. Deleting a date that has
// none is a no-op.
func (s *contextService) DeleteContext(ctx context.Context, date time.Time) error {
	if err := s.contextRepo.Delete(ctx, models.Day(date)); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	s.invalidator.NotifyDataChanged()
	return nil
}

// validateContextRequest rejects values outside their closed sets or
// numeric ranges before anything is merged.
func validateContextRequest(req *models.SaveContextRequest) error {
	if req.WeatherCondition.Set && req.WeatherCondition.Valid {
		if !models.WeatherCondition(req.WeatherCondition.Value).Valid() {
			return ErrInvalidFactor
		}
	}
	if req.TemperatureUnit.Set && req.TemperatureUnit.Valid {
		if !models.TemperatureUnit(req.TemperatureUnit.Value).Valid() {
			return ErrInvalidFactor
		}
	}
	if req.ExerciseLevel.Set && req.ExerciseLevel.Valid {
		if !models.ExerciseLevel(req.ExerciseLevel.Value).Valid() {
			return ErrInvalidFactor
		}
	}
	if req.Temperature.Set && req.Temperature.Valid {
		if math.IsNaN(req.Temperature.Value) || math.IsInf(req.Temperature.Value, 0) {
			return ErrInvalidFactor
		}
	}
	if req.SleepQuality.Set && req.SleepQuality.Valid {
		if req.SleepQuality.Value < 1 || req.SleepQuality.Value > 10 {
			return ErrInvalidFactor
		}
	}
	if req.WorkStress.Set && req.WorkStress.Valid {
		if req.WorkStress.Value < 1 || req.WorkStress.Value > 10 {
			return ErrInvalidFactor
		}
	}

	latSet := req.Latitude.Set && req.Latitude.Valid
	lonSet := req.Longitude.Set && req.Longitude.Valid
	if latSet != lonSet {
		return ErrInvalidFactor
	}
	if latSet {
		if req.Latitude.Value < -90 || req.Latitude.Value > 90 {
			return ErrInvalidFactor
		}
		if req.Longitude.Value < -180 || req.Longitude.Value > 180 {
			return ErrInvalidFactor
		}
	}

	return nil
}

// applyContextRequest merges the request onto the record: absent fields
// keep the stored value, null fields clear it, values replace it.
func applyContextRequest(record *models.ContextRecord, req *models.SaveContextRequest) {
	if req.WeatherCondition.Set {
		if req.WeatherCondition.Valid {
			cond := models.WeatherCondition(req.WeatherCondition.Value)
			record.WeatherCondition = &cond
		} else {
			record.WeatherCondition = nil
		}
		// Weather typed by hand is no longer provider data
		record.AutoWeather = false
	}
	if req.Temperature.Set {
		record.Temperature = req.Temperature.ToPtr()
	}
	if req.TemperatureUnit.Set {
		if req.TemperatureUnit.Valid {
			unit := models.TemperatureUnit(req.TemperatureUnit.Value)
			record.TemperatureUnit = &unit
		} else {
			record.TemperatureUnit = nil
		}
	}
	if req.WeatherDescription.Set {
		record.WeatherDescription = req.WeatherDescription.Value
	}
	if req.SleepQuality.Set {
		record.SleepQuality = req.SleepQuality.ToPtr()
	}
	if req.Bedtime.Set {
		record.Bedtime = req.Bedtime.ToPtr()
	}
	if req.WakeTime.Set {
		record.WakeTime = req.WakeTime.ToPtr()
	}
	if req.ExerciseLevel.Set {
		if req.ExerciseLevel.Valid {
			level := models.ExerciseLevel(req.ExerciseLevel.Value)
			record.ExerciseLevel = &level
		} else {
			record.ExerciseLevel = nil
		}
	}
	if req.SocialActivities != nil {
		record.SocialActivities = normalizeTags(req.SocialActivities)
	}
	if req.Hobbies != nil {
		record.Hobbies = normalizeTags(req.Hobbies)
	}
	if req.CustomTags != nil {
		record.CustomTags = normalizeTags(req.CustomTags)
	}
	if req.WorkStress.Set {
		record.WorkStress = req.WorkStress.ToPtr()
	}
	if req.Note.Set {
		record.Note = strings.TrimSpace(req.Note.Value)
	}
}

// autoFillWeather fetches current weather for the coordinates and writes it
// onto the record. Fetch failures are logged and skipped; a context save
// never fails because the weather provider is down.
func (s *contextService) autoFillWeather(ctx context.Context, record *models.ContextRecord, lat, lon float64) {
	if s.weather == nil {
		return
	}

	weather, err := s.weather.CurrentWeather(ctx, lat, lon)
	if err != nil || weather == nil {
		logger.WithContext(ctx).Warn("weather auto-fill failed, saving context without it",
			logger.Err(err))
		return
	}

	condition := weather.Condition
	temperature := weather.Temperature
	unit := weather.Unit
	record.WeatherCondition = &condition
	record.Temperature = &temperature
	record.TemperatureUnit = &unit
	record.WeatherDescription = weather.Description
	record.AutoWeather = true
}

// normalizeTags trims, drops empties, and de-duplicates while keeping the
// caller's order. An all-empty list comes back nil so it reads as absent.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
