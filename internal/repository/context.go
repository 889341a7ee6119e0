package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
)

type contextRepository struct {
	db *sql.DB
}

// NewContextRepository creates a new day context repository
func NewContextRepository(db *sql.DB) ContextRepository {
	return &contextRepository{db: db}
}

func (r *contextRepository) Upsert(ctx context.Context, record *models.ContextRecord) error {
	socialJSON, _ := json.Marshal(record.SocialActivities)
	hobbiesJSON, _ := json.Marshal(record.Hobbies)
	tagsJSON, _ := json.Marshal(record.CustomTags)

	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO day_context (
			date, weather_condition, temperature, temperature_unit,
			weather_description, auto_weather, sleep_quality, bedtime,
			wake_time, exercise_level, social_activities, hobbies,
			work_stress, custom_tags, note, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		models.FormatDate(record.Date),
		conditionValue(record.WeatherCondition),
		record.Temperature,
		unitValue(record.TemperatureUnit),
		record.WeatherDescription,
		record.AutoWeather,
		record.SleepQuality,
		record.Bedtime,
		record.WakeTime,
		levelValue(record.ExerciseLevel),
		string(socialJSON),
		string(hobbiesJSON),
		record.WorkStress,
		string(tagsJSON),
		record.Note,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save day context: %w", err)
	}
	return nil
}

func (r *contextRepository) GetByDate(ctx context.Context, date time.Time) (*models.ContextRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, weather_condition, temperature, temperature_unit,
		       weather_description, auto_weather, sleep_quality, bedtime,
		       wake_time, exercise_level, social_activities, hobbies,
		       work_stress, custom_tags, note, updated_at
		FROM day_context
		WHERE date = ?
	`, models.FormatDate(date))

	record, err := scanContext(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query day context: %w", err)
	}
	return record, nil
}

func (r *contextRepository) GetRange(ctx context.Context, start, end time.Time) ([]models.ContextRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, weather_condition, temperature, temperature_unit,
		       weather_description, auto_weather, sleep_quality, bedtime,
		       wake_time, exercise_level, social_activities, hobbies,
		       work_stress, custom_tags, note, updated_at
		FROM day_context
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, models.FormatDate(start), models.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query day context range: %w", err)
	}
	defer rows.Close()

	records := make([]models.ContextRecord, 0)
	for rows.Next() {
		record, err := scanContext(rows.Scan)
		if err != nil {
			logger.Warn("skipping unreadable day context", logger.Err(err))
			continue
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read day context rows: %w", err)
	}

	return records, nil
}

func (r *contextRepository) Delete(ctx context.Context, date time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM day_context WHERE date = ?`, models.FormatDate(date))
	if err != nil {
		return fmt.Errorf("failed to delete day context: %w", err)
	}
	return nil
}

// scanContext scans one day_context row via the given scan function,
// converting SQL nullables and JSON-encoded lists back to model fields.
func scanContext(scan func(...any) error) (*models.ContextRecord, error) {
	var (
		record      models.ContextRecord
		dateStr     string
		condition   sql.NullString
		temperature sql.NullFloat64
		unit        sql.NullString
		sleep       sql.NullInt64
		bedtime     sql.NullTime
		wakeTime    sql.NullTime
		level       sql.NullString
		socialJSON  sql.NullString
		hobbiesJSON sql.NullString
		stress      sql.NullInt64
		tagsJSON    sql.NullString
	)

	err := scan(
		&dateStr, &condition, &temperature, &unit,
		&record.WeatherDescription, &record.AutoWeather, &sleep, &bedtime,
		&wakeTime, &level, &socialJSON, &hobbiesJSON,
		&stress, &tagsJSON, &record.Note, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Date, err = models.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("malformed date %q: %w", dateStr, err)
	}

	if condition.Valid {
		c := models.WeatherCondition(condition.String)
		record.WeatherCondition = &c
	}
	if temperature.Valid {
		record.Temperature = &temperature.Float64
	}
	if unit.Valid {
		u := models.TemperatureUnit(unit.String)
		record.TemperatureUnit = &u
	}
	if sleep.Valid {
		v := int(sleep.Int64)
		record.SleepQuality = &v
	}
	if bedtime.Valid {
		record.Bedtime = &bedtime.Time
	}
	if wakeTime.Valid {
		record.WakeTime = &wakeTime.Time
	}
	if level.Valid {
		l := models.ExerciseLevel(level.String)
		record.ExerciseLevel = &l
	}
	if stress.Valid {
		v := int(stress.Int64)
		record.WorkStress = &v
	}
	if socialJSON.Valid {
		json.Unmarshal([]byte(socialJSON.String), &record.SocialActivities)
	}
	if hobbiesJSON.Valid {
		json.Unmarshal([]byte(hobbiesJSON.String), &record.Hobbies)
	}
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &record.CustomTags)
	}

	return &record, nil
}

func conditionValue(c *models.WeatherCondition) any {
	if c == nil {
		return nil
	}
	return string(*c)
}

func unitValue(u *models.TemperatureUnit) any {
	if u == nil {
		return nil
	}
	return string(*u)
}

func levelValue(l *models.ExerciseLevel) any {
	if l == nil {
		return nil
	}
	return string(*l)
}
