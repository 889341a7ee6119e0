package service

import (
	"context"
	"fmt"

	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/repository"
	"github.com/moodlens/backend/pkg/openmeteo"
)

type weatherService struct {
	client       *openmeteo.Client
	settingsRepo repository.SettingsRepository
}

// NewWeatherService creates a new weather service
func NewWeatherService(client *openmeteo.Client, settingsRepo repository.SettingsRepository) WeatherService {
	return &weatherService{
		client:       client,
		settingsRepo: settingsRepo,
	}
}

// CurrentWeather fetches the current conditions for a coordinate in the
// user's preferred temperature unit. An unset or unknown unit setting
// falls back to celsius, and a stored provider key is forwarded when one
// is configured.
func (s *weatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	unit := models.UnitCelsius
	if u := models.TemperatureUnit(s.setting(ctx, repository.SettingTemperatureUnit)); u.Valid() {
		unit = u
	}

	obs, err := s.client.CurrentWithKey(ctx, lat, lon, string(unit), s.setting(ctx, repository.SettingWeatherAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	return &models.Weather{
		Condition:   conditionFromCode(obs.WeatherCode),
		Temperature: obs.Temperature,
		Unit:        unit,
		Description: openmeteo.DescribeCode(obs.WeatherCode),
	}, nil
}

// setting reads one settings value, treating a failed read the same as
// an unset key so weather keeps working without the settings table.
func (s *weatherService) setting(ctx context.Context, key string) string {
	v, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		logger.WithContext(ctx).Warn("failed to load setting",
			logger.String("key", key), logger.Err(err))
		return ""
	}
	return v
}

// conditionFromCode folds WMO 4677 weather codes onto the app's closed
// condition set.
func conditionFromCode(code int) models.WeatherCondition {
	switch {
	case code <= 1:
		return models.WeatherSunny
	case code <= 3:
		return models.WeatherCloudy
	case code == 45 || code == 48:
		return models.WeatherFoggy
	case code >= 51 && code <= 67:
		return models.WeatherRainy
	case code >= 71 && code <= 77:
		return models.WeatherSnowy
	case code >= 80 && code <= 82:
		return models.WeatherRainy
	case code == 85 || code == 86:
		return models.WeatherSnowy
	case code >= 95:
		return models.WeatherStormy
	default:
		return models.WeatherCloudy
	}
}
