package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// LogConfig holds logging configuration. Empty values let the server
// pick environment-appropriate defaults.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds the SQLite database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// WeatherConfig holds the weather provider configuration
type WeatherConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnalyticsConfig holds the tunables of the analytics engine
type AnalyticsConfig struct {
	// TrendThreshold is the minimum half-range average difference, in
	// rating points, before a trend counts as improving or declining.
	TrendThreshold float64 `mapstructure:"trend_threshold"`
	// CorrelationMinSample is the minimum number of logged days a factor
	// group needs before it is correlated at all.
	CorrelationMinSample int `mapstructure:"correlation_min_sample"`
	// CorrelationMinStrength is the minimum effect size for a correlation
	// to surface as an insight.
	CorrelationMinStrength float64 `mapstructure:"correlation_min_strength"`
	// InsightWindowDays is how far back insight generation looks.
	InsightWindowDays int `mapstructure:"insight_window_days"`
	// InsightCacheTTL is the staleness backstop for cached insights.
	InsightCacheTTL time.Duration `mapstructure:"insight_cache_ttl"`
	// MaxInsights caps the number of insights returned per generation.
	MaxInsights int `mapstructure:"max_insights"`
	// ForecastOverallWeight and ForecastWeekdayWeight blend the recent
	// overall average with the same-weekday average when predicting
	// tomorrow's mood.
	ForecastOverallWeight float64 `mapstructure:"forecast_overall_weight"`
	ForecastWeekdayWeight float64 `mapstructure:"forecast_weekday_weight"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.path", "moodlens.db")
	v.SetDefault("weather.base_url", "https://api.open-meteo.com")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("analytics.trend_threshold", 0.3)
	v.SetDefault("analytics.correlation_min_sample", 3)
	v.SetDefault("analytics.correlation_min_strength", 0.3)
	v.SetDefault("analytics.insight_window_days", 90)
	v.SetDefault("analytics.insight_cache_ttl", 6*time.Hour)
	v.SetDefault("analytics.max_insights", 10)
	v.SetDefault("analytics.forecast_overall_weight", 0.6)
	v.SetDefault("analytics.forecast_weekday_weight", 0.4)

	// Read from environment variables
	v.SetEnvPrefix("MOODLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for backward compatibility
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.path", "DATABASE_PATH")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are present and sane
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Analytics.TrendThreshold < 0 {
		return fmt.Errorf("analytics.trend_threshold must not be negative")
	}
	if c.Analytics.CorrelationMinSample < 1 {
		return fmt.Errorf("analytics.correlation_min_sample must be at least 1")
	}
	if c.Analytics.InsightWindowDays < 1 {
		return fmt.Errorf("analytics.insight_window_days must be at least 1")
	}
	if c.Analytics.InsightCacheTTL <= 0 {
		return fmt.Errorf("analytics.insight_cache_ttl must be positive")
	}
	if c.Analytics.MaxInsights < 1 {
		return fmt.Errorf("analytics.max_insights must be at least 1")
	}
	if c.Analytics.ForecastOverallWeight < 0 || c.Analytics.ForecastWeekdayWeight < 0 {
		return fmt.Errorf("forecast weights must not be negative")
	}
	if c.Analytics.ForecastOverallWeight+c.Analytics.ForecastWeekdayWeight == 0 {
		return fmt.Errorf("forecast weights must not both be zero")
	}
	switch c.Log.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
