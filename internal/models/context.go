package models

import "time"

// WeatherCondition is the closed set of loggable weather states.
type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherStormy WeatherCondition = "stormy"
	WeatherSnowy  WeatherCondition = "snowy"
	WeatherFoggy  WeatherCondition = "foggy"
)

// Valid reports whether the condition is one of the known states.
func (w WeatherCondition) Valid() bool {
	switch w {
	case WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStormy, WeatherSnowy, WeatherFoggy:
		return true
	}
	return false
}

// TemperatureUnit is the unit a temperature was recorded in.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// Valid reports whether the unit is one of the known units.
func (u TemperatureUnit) Valid() bool {
	return u == UnitCelsius || u == UnitFahrenheit
}

// ExerciseLevel is the self-reported exercise intensity for a day.
type ExerciseLevel string

const (
	ExerciseNone     ExerciseLevel = "none"
	ExerciseLight    ExerciseLevel = "light"
	ExerciseModerate ExerciseLevel = "moderate"
	ExerciseIntense  ExerciseLevel = "intense"
)

// Valid reports whether the level is one of the known intensities.
func (e ExerciseLevel) Valid() bool {
	switch e {
	case ExerciseNone, ExerciseLight, ExerciseModerate, ExerciseIntense:
		return true
	}
	return false
}

// ContextRecord holds the contextual factors logged for one date. All
// factor fields are optional; an absent factor is valid "no data", never
// an error. One record per date, upsert semantics.
type ContextRecord struct {
	Date               time.Time         `json:"date"`
	WeatherCondition   *WeatherCondition `json:"weather_condition,omitempty"`
	Temperature        *float64          `json:"temperature,omitempty"`
	TemperatureUnit    *TemperatureUnit  `json:"temperature_unit,omitempty"`
	WeatherDescription string            `json:"weather_description,omitempty"`
	// AutoWeather marks whether the weather fields were fetched from the
	// provider rather than typed by the user.
	AutoWeather      bool           `json:"auto_weather"`
	SleepQuality     *int           `json:"sleep_quality,omitempty"`
	Bedtime          *time.Time     `json:"bedtime,omitempty"`
	WakeTime         *time.Time     `json:"wake_time,omitempty"`
	ExerciseLevel    *ExerciseLevel `json:"exercise_level,omitempty"`
	SocialActivities []string       `json:"social_activities,omitempty"`
	Hobbies          []string       `json:"hobbies,omitempty"`
	WorkStress       *int           `json:"work_stress,omitempty"`
	CustomTags       []string       `json:"custom_tags,omitempty"`
	Note             string         `json:"note,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// SaveContextRequest is the request to upsert one date's context record.
// Nullable fields distinguish "not sent" (leave stored value alone) from
// an explicit null (clear it). Enum fields arrive as strings and are
// validated by the service.
type SaveContextRequest struct {
	WeatherCondition   NullableString `json:"weather_condition"`
	Temperature        NullableFloat  `json:"temperature"`
	TemperatureUnit    NullableString `json:"temperature_unit"`
	WeatherDescription NullableString `json:"weather_description"`
	// Latitude/Longitude, when both set, ask the service to auto-fill the
	// weather fields from the provider.
	Latitude         NullableFloat  `json:"latitude"`
	Longitude        NullableFloat  `json:"longitude"`
	SleepQuality     NullableInt    `json:"sleep_quality"`
	Bedtime          NullableTime   `json:"bedtime"`
	WakeTime         NullableTime   `json:"wake_time"`
	ExerciseLevel    NullableString `json:"exercise_level"`
	SocialActivities []string       `json:"social_activities"`
	Hobbies          []string       `json:"hobbies"`
	WorkStress       NullableInt    `json:"work_stress"`
	CustomTags       []string       `json:"custom_tags"`
	Note             NullableString `json:"note"`
}

// Weather is a fetched weather observation from the provider, used to
// auto-fill context records. A nil Weather means the fetch failed and
// the caller should degrade gracefully.
type Weather struct {
	Condition   WeatherCondition `json:"condition"`
	Temperature float64          `json:"temperature"`
	Unit        TemperatureUnit  `json:"unit"`
	Description string           `json:"description"`
}
